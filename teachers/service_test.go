package teachers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/fakebackend"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/teachers"
	"github.com/stretchr/testify/require"
)

const base = "/teacher/manage_teacher"

func TestService_ListAndGet(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodGet, base+"/getTeachersBySchoolId", http.StatusOK, map[string]any{
		"teachers": []map[string]any{
			{"teacher_id": 9, "teacher_first_name": "Jane", "teacher_last_name": "Doe", "qualification": "M.Sc"},
		},
	})
	backend.HandleData(http.MethodGet, base+"/getTeacherById", map[string]any{
		"teacher_id":         9,
		"teacher_first_name": "Jane",
		"experience":         4.5,
		"address":            nil,
		"subject_assignments": []map[string]any{
			{"subject_id": 2, "subject_name": "Maths", "class_id": 31, "class_number": 5, "section": "A"},
		},
	}, "")
	svc := teachers.NewService(backend.NewClient(t, "admin1"))
	ctx := context.Background()

	list, err := svc.ListBySchool(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Jane Doe", list[0].FullName())

	detail, err := svc.GetByID(ctx, 4, 9, 0)
	require.NoError(t, err)
	require.Equal(t, 9, detail.ID)
	require.Equal(t, 4.5, *detail.Experience)
	require.Empty(t, detail.Address)
	require.Equal(t, "Maths", detail.SubjectAssignments[0].SubjectName)

	rec, _ := backend.LastRequest(http.MethodGet, base+"/getTeacherById")
	require.Equal(t, "9", rec.Query.Get("teacher_id"))
	require.Equal(t, "4", rec.Query.Get("school_id"))
}

func TestService_Add(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodPost, base+"/addTeacher", http.StatusCreated,
		map[string]string{"message": "Teacher created successfully."})
	svc := teachers.NewService(backend.NewClient(t, "admin1"))
	ctx := context.Background()

	req := teachers.AddRequest{
		FirstName:   "Jane",
		UserName:    "jane.doe",
		Password:    "Teach3r!x",
		Email:       "jane@example.com",
		PhoneNumber: "0801234567",
		Experience:  utils.Ptr(4.5),
		SubjectAssignments: []teachers.SubjectAssignment{
			{SubjectID: 2, ClassID: 31},
		},
	}
	msg, err := svc.Add(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "Teacher created successfully.", msg)

	rec, _ := backend.LastRequest(http.MethodPost, base+"/addTeacher")
	var sent struct {
		Experience         float64                      `json:"experience"`
		SubjectAssignments []teachers.SubjectAssignment `json:"subject_assignments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	require.Equal(t, 4.5, sent.Experience)
	require.Equal(t, req.SubjectAssignments, sent.SubjectAssignments)

	req.SubjectAssignments = []teachers.SubjectAssignment{{SubjectID: 2}}
	_, err = svc.Add(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	req.SubjectAssignments = nil
	req.Experience = utils.Ptr(-1.0)
	_, err = svc.Add(ctx, req)
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	require.Equal(t, 1, backend.Hits(http.MethodPost, base+"/addTeacher"))
}

func TestService_UpdateAndDelete(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodPut, base+"/updateTeacherById", http.StatusOK,
		map[string]string{"message": "Teacher updated successfully."})
	backend.HandleJSON(http.MethodDelete, base+"/deleteTeacherById", http.StatusOK,
		map[string]string{"message": "Teacher deleted successfully."})
	svc := teachers.NewService(backend.NewClient(t, "admin1"))
	ctx := context.Background()

	msg, err := svc.Update(ctx, teachers.UpdateRequest{TeacherID: 9, Qualification: "PhD"})
	require.NoError(t, err)
	require.Equal(t, "Teacher updated successfully.", msg)

	msg, err = svc.Delete(ctx, 0, 9)
	require.NoError(t, err)
	require.Equal(t, "Teacher deleted successfully.", msg)

	rec, _ := backend.LastRequest(http.MethodDelete, base+"/deleteTeacherById")
	require.JSONEq(t, `{"teacher_id":9}`, string(rec.Body))

	_, err = svc.Delete(ctx, 4, 0)
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestService_NotFound(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodGet, base+"/getTeacherById", http.StatusNotFound,
		map[string]string{"error": "Teacher not found."})
	svc := teachers.NewService(backend.NewClient(t, "admin1"))

	_, err := svc.GetByID(context.Background(), 4, 99, 0)
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	require.Contains(t, err.Error(), "Teacher not found.")
}
