// Package subjects lists and maintains the subjects taught in a school.
package subjects

import (
	"context"

	"github.com/jrsteele09/go-school-client/apiclient"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath   = "/teacher/manage_subject"
	listPath   = basePath + "/getSubjects"
	addPath    = basePath + "/addSubject"
	updatePath = basePath + "/updateSubjectById"
)

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type AddRequest struct {
	SchoolID int    `json:"school_id,omitempty"`
	Name     string `json:"name" validate:"notblank,max=100"`
}

type RenameRequest struct {
	SchoolID  int    `json:"school_id,omitempty"`
	SubjectID int    `json:"subject_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"notblank,max=100"`
}

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// List returns the platform's default subjects.
func (s *Service) List(ctx context.Context) ([]Subject, error) {
	return s.ListBySchool(ctx, 0)
}

// ListBySchool returns the subjects of one school. For users bound to a
// school the backend applies their school when schoolID is zero.
func (s *Service) ListBySchool(ctx context.Context, schoolID int) ([]Subject, error) {
	resp, err := s.client.Get(ctx, listPath, utils.Query(map[string]any{"school_id": schoolID}))
	if err != nil {
		return nil, err
	}
	// This endpoint answers with a bare array.
	var subjects []Subject
	if err := resp.Decode(&subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// Add creates a subject and returns its ID.
func (s *Service) Add(ctx context.Context, req AddRequest) (int, error) {
	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	resp, err := s.client.Post(ctx, addPath, req)
	if err != nil {
		return 0, err
	}
	var body struct {
		SubjectID int `json:"subject_id"`
	}
	if err := resp.Decode(&body); err != nil {
		return 0, err
	}
	return body.SubjectID, nil
}

func (s *Service) Rename(ctx context.Context, req RenameRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := s.client.Put(ctx, updatePath, req)
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}
