package classes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-school-client/classes"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/fakebackend"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/stretchr/testify/require"
)

const base = "/classes/class_manager"

func TestService_ListBySchool(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodGet, base+"/getClassesBySchoolId", http.StatusOK, map[string]any{
		"classes": []map[string]any{
			{"class_id": 31, "class_number": 5, "section": "A", "teacher_id": 9, "teacher_name": "Jane Doe", "school_id": "4", "student_count": 28},
			{"class_id": 32, "class_number": 5, "section": "B", "teacher_id": nil, "school_id": "4"},
		},
	})
	svc := classes.NewService(backend.NewClient(t, "admin1"))

	list, err := svc.ListBySchool(context.Background(), 4, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "5-A", list[0].Name())
	require.Equal(t, utils.FlexInt(4), list[0].SchoolID)
	require.Equal(t, 9, *list[0].TeacherID)
	require.Nil(t, list[1].TeacherID)
	require.True(t, list[0].HasTeacher())
	require.False(t, list[1].HasTeacher())

	rec, _ := backend.LastRequest(http.MethodGet, base+"/getClassesBySchoolId")
	require.Equal(t, "4", rec.Query.Get("school_id"))
	require.False(t, rec.Query.Has("academic_year_id"))
}

func TestService_GetByID(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodGet, base+"/getClassById", http.StatusOK, map[string]any{
		"class": map[string]any{
			"class_id":     "31",
			"class_number": 5,
			"section":      "A",
			"studends_list": []map[string]any{
				{"student_id": 7, "student_name": "Kiran Rao"},
			},
		},
	})
	svc := classes.NewService(backend.NewClient(t, "teacher1"))
	ctx := context.Background()

	detail, err := svc.GetByID(ctx, 4, 31, 0)
	require.NoError(t, err)
	require.Equal(t, utils.FlexInt(31), detail.ID)
	require.Len(t, detail.Students, 1)
	require.Equal(t, "Kiran Rao", detail.Students[0].Name)

	_, err = svc.GetByID(ctx, 4, 0, 0)
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestService_CreateAndUpdate(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleJSON(http.MethodPost, base+"/createClass", http.StatusCreated, map[string]any{
		"class": map[string]any{"id": 77, "class_id": 33, "class_number": 6, "section": "C", "academic_year_id": 1},
	})
	backend.HandleJSON(http.MethodPut, base+"/updateClassById", http.StatusOK,
		map[string]string{"message": "Class assignment updated successfully."})
	svc := classes.NewService(backend.NewClient(t, "admin1"))
	ctx := context.Background()

	created, err := svc.Create(ctx, classes.CreateRequest{ClassNumber: 6, Section: "C", BoardID: 1})
	require.NoError(t, err)
	require.Equal(t, 77, created.AssignmentID)
	require.Nil(t, created.TeacherID)

	rec, _ := backend.LastRequest(http.MethodPost, base+"/createClass")
	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	require.Equal(t, map[string]any{"class_number": float64(6), "section": "C", "board_id": float64(1)}, sent)

	_, err = svc.Create(ctx, classes.CreateRequest{ClassNumber: 6, BoardID: 1})
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	msg, err := svc.Update(ctx, classes.UpdateRequest{ClassID: 33, TeacherID: 9})
	require.NoError(t, err)
	require.Equal(t, "Class assignment updated successfully.", msg)
	require.Equal(t, 1, backend.Hits(http.MethodPost, base+"/createClass"))
}

func TestService_ListAvailable(t *testing.T) {
	backend := fakebackend.Start(t)
	backend.HandleData(http.MethodGet, base+"/getAvailableClassList",
		[]map[string]int{{"id": 1, "class_number": 1}, {"id": 2, "class_number": 2}}, "")
	svc := classes.NewService(backend.NewClient(t, "admin1"))

	avail, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Equal(t, []classes.Available{{ID: 1, ClassNumber: 1}, {ID: 2, ClassNumber: 2}}, avail)
}
