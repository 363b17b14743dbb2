// Package ebooks uploads, lists and removes syllabus PDFs. Uploads and
// deletes require a Super Admin session.
package ebooks

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath   = "/syllabus/manage_ebook"
	uploadPath = basePath + "/uploadEbook"
	listPath   = basePath + "/getEbooks"
	deletePath = basePath + "/deleteEbookById"

	// The listing answers 404 with this error when nothing matches the filter.
	noEbooksMessage = "No eBooks found"
)

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Upload stores a PDF for a board, class and subject, replacing any ebook
// already filed under the same name.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(req.FileName), ".pdf") {
		return "", validate.FieldErrors{"file": "file must be a PDF"}
	}

	fields := map[string]string{
		"upload_type": string(req.Type),
		"board_id":    strconv.Itoa(req.BoardID),
		"class_id":    strconv.Itoa(req.ClassID),
		"subject_id":  strconv.Itoa(req.SubjectID),
	}
	if req.Type == UploadChapterWise {
		fields["chapter_number"] = strconv.Itoa(req.ChapterNumber)
	}
	file := apiclient.File{Field: "file", Name: filepath.Base(req.FileName), Contents: req.File}

	resp, err := s.client.Upload(ctx, uploadPath, fields, file)
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

// List returns one page of ebooks. Pages start at 1.
func (s *Service) List(ctx context.Context, filter Filter) (*Page, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	query := utils.Query(map[string]any{
		"board_id":   filter.BoardID,
		"class_id":   filter.ClassID,
		"subject_id": filter.SubjectID,
		"page":       page,
	})
	resp, err := s.client.Get(ctx, listPath, query)
	if err != nil {
		return nil, err
	}

	var body apiclient.Envelope[[]Ebook]
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	return &Page{
		Number: page,
		Ebooks: body.Data,
		End:    len(body.Data) < PageSize,
	}, nil
}

// All walks every page of the listing. A filter that matches nothing yields
// an empty slice.
func (s *Service) All(ctx context.Context, filter Filter) ([]Ebook, error) {
	all := []Ebook{}
	filter.Page = 1
	for {
		page, err := s.List(ctx, filter)
		if err != nil {
			if filter.Page == 1 && noMatches(err) {
				return all, nil
			}
			return nil, err
		}
		all = append(all, page.Ebooks...)
		if page.End {
			return all, nil
		}
		filter.Page++
	}
}

// noMatches reports the listing's 404 for an empty result. Other 404s, such
// as an unknown board or class, stay errors.
func noMatches(err error) bool {
	var upstream *apiclient.UpstreamError
	return apperrors.As(err, &upstream) &&
		upstream.Status == http.StatusNotFound &&
		strings.HasPrefix(upstream.Payload.Error, noEbooksMessage)
}

func (s *Service) Delete(ctx context.Context, ebookID int) (string, error) {
	if ebookID <= 0 {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Delete] ebook ID is required")
	}
	resp, err := s.client.Delete(ctx, deletePath, utils.Query(map[string]any{"ebook_id": ebookID}))
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

// Download copies the ebook's PDF to w. The temporary link is pre-signed, so
// no credentials are sent with it.
func (s *Service) Download(ctx context.Context, ebook *Ebook, w io.Writer) (int64, error) {
	if ebook == nil || ebook.FilePath == "" {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Download] ebook has no download link")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ebook.FilePath, nil)
	if err != nil {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Download] %v", err)
	}
	resp, err := s.client.HTTPClient().Do(req)
	if err != nil {
		return 0, &apiclient.NetworkError{Method: http.MethodGet, URL: ebook.FilePath, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.Wrapf(apperrors.ErrUpstream, "[Download] ebook %d: %s", ebook.ID, resp.Status)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &apiclient.NetworkError{Method: http.MethodGet, URL: ebook.FilePath, Err: err}
	}
	return n, nil
}
