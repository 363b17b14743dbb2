package subjects_test

import (
	"context"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/fakebackend"
	"github.com/jrsteele09/go-school-client/subjects"
	"github.com/stretchr/testify/require"
)

func TestService_List(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodGet, "/teacher/manage_subject/getSubjects", http.StatusOK,
		[]map[string]any{{"id": 1, "name": "English"}, {"id": 2, "name": "Maths"}})
	svc := subjects.NewService(backend.NewClient(t, "super"))
	ctx := context.Background()

	defaults, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []subjects.Subject{{ID: 1, Name: "English"}, {ID: 2, Name: "Maths"}}, defaults)

	rec, _ := backend.LastRequest(http.MethodGet, "/teacher/manage_subject/getSubjects")
	require.False(t, rec.Query.Has("school_id"))

	_, err = svc.ListBySchool(ctx, 4)
	require.NoError(t, err)
	rec, _ = backend.LastRequest(http.MethodGet, "/teacher/manage_subject/getSubjects")
	require.Equal(t, "4", rec.Query.Get("school_id"))
}

func TestService_AddAndRename(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodPost, "/teacher/manage_subject/addSubject", http.StatusCreated,
		map[string]any{"message": "Subject created successfully.", "subject_id": 12})
	backend.HandleJSON(http.MethodPut, "/teacher/manage_subject/updateSubjectById", http.StatusBadRequest,
		map[string]string{"error": "Subject with this name already exists."})
	svc := subjects.NewService(backend.NewClient(t, "admin1"))
	ctx := context.Background()

	id, err := svc.Add(ctx, subjects.AddRequest{Name: "Physics"})
	require.NoError(t, err)
	require.Equal(t, 12, id)

	_, err = svc.Add(ctx, subjects.AddRequest{Name: " "})
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	_, err = svc.Rename(ctx, subjects.RenameRequest{SubjectID: 12, Name: "Maths"})
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	require.Contains(t, err.Error(), "already exists")
}
