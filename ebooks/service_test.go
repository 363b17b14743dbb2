package ebooks_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/jrsteele09/go-school-client/ebooks"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/fakebackend"
	"github.com/jrsteele09/go-school-client/internal/validate"
	"github.com/stretchr/testify/require"
)

const base = "/syllabus/manage_ebook"

func TestService_Upload(t *testing.T) {
	backend := fakebackend.Start(t)
	var gotFields map[string]string
	var gotFile, gotName string
	backend.Handle(http.MethodPost, base+"/uploadEbook", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, `{"error":"bad form"}`, http.StatusBadRequest)
			return
		}
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `{"error":"No file provided."}`, http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotFile, gotName = string(data), hdr.Filename
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"eBook uploaded successfully"}`))
	})
	svc := ebooks.NewService(backend.NewClient(t, "super"))

	msg, err := svc.Upload(context.Background(), ebooks.UploadRequest{
		Type:          ebooks.UploadChapterWise,
		BoardID:       1,
		ClassID:       5,
		SubjectID:     2,
		ChapterNumber: 3,
		FileName:      "/tmp/books/Maths-Ch3.PDF",
		File:          strings.NewReader("%PDF-1.7 chapter three"),
	})
	require.NoError(t, err)
	require.Equal(t, "eBook uploaded successfully", msg)
	require.Equal(t, map[string]string{
		"upload_type":    "chapter_wise",
		"board_id":       "1",
		"class_id":       "5",
		"subject_id":     "2",
		"chapter_number": "3",
	}, gotFields)
	require.Equal(t, "%PDF-1.7 chapter three", gotFile)
	require.Equal(t, "Maths-Ch3.PDF", gotName)
}

func TestService_UploadValidation(t *testing.T) {
	backend := fakebackend.Start(t)
	svc := ebooks.NewService(backend.NewClient(t, "super"))
	valid := func() ebooks.UploadRequest {
		return ebooks.UploadRequest{
			Type:      ebooks.UploadSingle,
			BoardID:   1,
			ClassID:   5,
			SubjectID: 2,
			FileName:  "maths.pdf",
			File:      strings.NewReader("%PDF"),
		}
	}

	tests := map[string]struct {
		mutate func(*ebooks.UploadRequest)
		field  string
	}{
		"chapter number missing": {func(r *ebooks.UploadRequest) { r.Type = ebooks.UploadChapterWise }, "chapter_number"},
		"unknown type":           {func(r *ebooks.UploadRequest) { r.Type = "chapter" }, "upload_type"},
		"not a pdf":              {func(r *ebooks.UploadRequest) { r.FileName = "maths.docx" }, "file"},
		"no board":               {func(r *ebooks.UploadRequest) { r.BoardID = 0 }, "board_id"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			_, err := svc.Upload(context.Background(), req)
			require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
			var fields validate.FieldErrors
			require.ErrorAs(t, err, &fields)
			require.Contains(t, fields, tc.field)
		})
	}
	require.Equal(t, 0, backend.Hits(http.MethodPost, base+"/uploadEbook"))
}

func TestService_ListPages(t *testing.T) {
	backend := fakebackend.Start(t)
	const total = 13
	backend.Handle(http.MethodGet, base+"/getEbooks", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		data := []ebooks.Ebook{}
		for id := (page-1)*ebooks.PageSize + 1; id <= total && id <= page*ebooks.PageSize; id++ {
			data = append(data, ebooks.Ebook{ID: id, Name: fmt.Sprintf("book-%d", id), UploadedAt: "2025-06-01 10:30:00"})
		}
		body := map[string]any{"data": data}
		if len(data) == 0 {
			body["message"] = "End of ebooks."
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	svc := ebooks.NewService(backend.NewClient(t, "teacher1"))
	ctx := context.Background()

	first, err := svc.List(ctx, ebooks.Filter{ClassID: 5})
	require.NoError(t, err)
	require.Equal(t, 1, first.Number)
	require.Len(t, first.Ebooks, ebooks.PageSize)
	require.False(t, first.End)

	uploaded, err := first.Ebooks[0].UploadTime()
	require.NoError(t, err)
	require.Equal(t, 2025, uploaded.Year())

	rec, _ := backend.LastRequest(http.MethodGet, base+"/getEbooks")
	require.Equal(t, "5", rec.Query.Get("class_id"))
	require.Equal(t, "1", rec.Query.Get("page"))
	require.False(t, rec.Query.Has("board_id"))

	all, err := svc.All(ctx, ebooks.Filter{ClassID: 5})
	require.NoError(t, err)
	require.Len(t, all, total)
	require.Equal(t, total, all[total-1].ID)
}

func TestService_DeleteAndDownload(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodDelete, base+"/deleteEbookById", http.StatusOK,
		map[string]string{"message": "eBook deleted successfully."})
	backend.HandlePublic(http.MethodGet, "/files/maths.pdf", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.7 maths"))
	})
	svc := ebooks.NewService(backend.NewClient(t, "super"))
	ctx := context.Background()

	msg, err := svc.Delete(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, "eBook deleted successfully.", msg)
	rec, _ := backend.LastRequest(http.MethodDelete, base+"/deleteEbookById")
	require.Equal(t, "8", rec.Query.Get("ebook_id"))

	var buf bytes.Buffer
	n, err := svc.Download(ctx, &ebooks.Ebook{ID: 8, FilePath: backend.URL() + "/files/maths.pdf"}, &buf)
	require.NoError(t, err)
	require.Equal(t, int64(len("%PDF-1.7 maths")), n)
	require.Equal(t, "%PDF-1.7 maths", buf.String())

	_, err = svc.Download(ctx, &ebooks.Ebook{ID: 9, FilePath: backend.URL() + "/files/missing.pdf"}, &buf)
	require.ErrorIs(t, err, apperrors.ErrUpstream)

	_, err = svc.Download(ctx, &ebooks.Ebook{ID: 10}, &buf)
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestService_AllWithNoMatches(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.Handle(http.MethodGet, base+"/getEbooks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if r.URL.Query().Get("board_id") == "99" {
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Board not found."})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "No eBooks found for the given criteria."})
	})
	svc := ebooks.NewService(backend.NewClient(t, "teacher1"))
	ctx := context.Background()

	all, err := svc.All(ctx, ebooks.Filter{SubjectID: 4})
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
	require.Equal(t, 1, backend.Hits(http.MethodGet, base+"/getEbooks"))

	_, err = svc.List(ctx, ebooks.Filter{SubjectID: 4})
	require.ErrorIs(t, err, apperrors.ErrUpstream)

	_, err = svc.All(ctx, ebooks.Filter{BoardID: 99})
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	require.ErrorContains(t, err, "Board not found.")
}
