// Package teachers manages a school's teaching staff and their subject
// assignments.
package teachers

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath    = "/teacher/manage_teacher"
	listPath    = basePath + "/getTeachersBySchoolId"
	addPath     = basePath + "/addTeacher"
	getByIDPath = basePath + "/getTeacherById"
	updatePath  = basePath + "/updateTeacherById"
	deletePath  = basePath + "/deleteTeacherById"
)

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

func (s *Service) ListBySchool(ctx context.Context, schoolID int) ([]Teacher, error) {
	resp, err := s.client.Get(ctx, listPath, utils.Query(map[string]any{"school_id": schoolID}))
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]Teacher](resp, "teachers")
}

// Add creates the teacher's account and returns the server's confirmation.
func (s *Service) Add(ctx context.Context, req AddRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := s.client.Post(ctx, addPath, req)
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

func (s *Service) GetByID(ctx context.Context, schoolID, teacherID, academicYearID int) (*Detail, error) {
	if teacherID <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[GetByID] teacher ID is required")
	}
	query := utils.Query(map[string]any{
		"teacher_id":       teacherID,
		"school_id":        schoolID,
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, getByIDPath, query)
	if err != nil {
		return nil, err
	}
	detail, err := apiclient.DecodeData[Detail](resp)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := s.client.Put(ctx, updatePath, req)
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

// Delete removes a teacher. The IDs travel in the request body.
func (s *Service) Delete(ctx context.Context, schoolID, teacherID int) (string, error) {
	if teacherID <= 0 {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Delete] teacher ID is required")
	}
	body := map[string]int{"teacher_id": teacherID}
	if schoolID > 0 {
		body["school_id"] = schoolID
	}
	resp, err := s.client.Do(ctx, apiclient.NewRequest(http.MethodDelete, deletePath, apiclient.WithJSON(body)))
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}
