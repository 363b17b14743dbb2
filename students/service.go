// Package students lists and maintains the students of a school.
package students

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath     = "/student/manage_student"
	listBySchool = basePath + "/getStudentsBySchoolId"
	listByClass  = basePath + "/getStudentsByClassId"
	createPath   = basePath + "/createStudent"
	getByIDPath  = basePath + "/getStudentById"
	updatePath   = basePath + "/updateStudentById"
	deletePath   = basePath + "/deleteStudentById"
)

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// ListBySchool returns the school's students with their class for the
// academic year. Zero IDs fall back to the caller's school and the backend's
// default year.
func (s *Service) ListBySchool(ctx context.Context, schoolID, academicYearID int) ([]Student, error) {
	query := utils.Query(map[string]any{
		"school_id":        schoolID,
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, listBySchool, query)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]Student](resp, "students")
}

func (s *Service) ListByClass(ctx context.Context, schoolID, classID, academicYearID int) ([]Student, error) {
	if classID <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[ListByClass] class ID is required")
	}
	query := utils.Query(map[string]any{
		"school_id":        schoolID,
		"class_id":         classID,
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, listByClass, query)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]Student](resp, "students")
}

// Create enrols a student and returns the new student's ID.
func (s *Service) Create(ctx context.Context, req CreateRequest) (int, error) {
	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	resp, err := s.client.Post(ctx, createPath, req)
	if err != nil {
		return 0, err
	}
	var body struct {
		StudentID int `json:"student_id"`
	}
	if err := resp.Decode(&body); err != nil {
		return 0, err
	}
	return body.StudentID, nil
}

func (s *Service) GetByID(ctx context.Context, schoolID, studentID, academicYearID int) (*Detail, error) {
	if studentID <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[GetByID] student ID is required")
	}
	query := utils.Query(map[string]any{
		"school_id":        schoolID,
		"student_id":       studentID,
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, getByIDPath, query)
	if err != nil {
		return nil, err
	}
	detail, err := apiclient.DecodeField[Detail](resp, "student")
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

// Delete removes a student. The IDs travel in the request body.
func (s *Service) Delete(ctx context.Context, schoolID, studentID int) (string, error) {
	if studentID <= 0 {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "[Delete] student ID is required")
	}
	body := map[string]int{"student_id": studentID}
	if schoolID > 0 {
		body["school_id"] = schoolID
	}
	resp, err := s.client.Do(ctx, apiclient.NewRequest(http.MethodDelete, deletePath, apiclient.WithJSON(body)))
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}
