// Package academics manages the academic years of a school.
package academics

import (
	"context"
	"strconv"

	"github.com/jrsteele09/go-school-client/apiclient"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath   = "/academics/academic_years"
	listPath   = basePath + "/getAcademicYears"
	addPath    = basePath + "/addAcademicYear"
	updatePath = basePath + "/updateAcademicYear"
)

type AcademicYear struct {
	ID        int  `json:"id"`
	StartYear int  `json:"start_year"`
	EndYear   int  `json:"end_year"`
	IsActive  bool `json:"is_active"`
}

// Label renders the year as "2025-2026".
func (y AcademicYear) Label() string {
	return strconv.Itoa(y.StartYear) + "-" + strconv.Itoa(y.EndYear)
}

type CreateRequest struct {
	SchoolID  int `json:"school_id,omitempty"`
	StartYear int `json:"start_year" validate:"required,gte=1900"`
	EndYear   int `json:"end_year" validate:"required,gtfield=StartYear"`
}

type UpdateRequest struct {
	SchoolID       int `json:"school_id,omitempty"`
	AcademicYearID int `json:"academic_year_id" validate:"required,gt=0"`
	StartYear      int `json:"start_year" validate:"required,gte=1900"`
	EndYear        int `json:"end_year" validate:"required,gtfield=StartYear"`
}

// Service is only usable by Super Admin and Admin sessions.
type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, schoolID int) ([]AcademicYear, error) {
	resp, err := s.client.Get(ctx, listPath, utils.Query(map[string]any{"school_id": schoolID}))
	if err != nil {
		return nil, err
	}
	var years []AcademicYear
	if err := resp.Decode(&years); err != nil {
		return nil, err
	}
	return years, nil
}

// Active returns the first active year, or nil if none is active.
func Active(years []AcademicYear) *AcademicYear {
	for i := range years {
		if years[i].IsActive {
			return &years[i]
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*AcademicYear, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := s.client.Post(ctx, addPath, req)
	if err != nil {
		return nil, err
	}
	return decodeYear(resp)
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (*AcademicYear, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := s.client.Put(ctx, updatePath, req)
	if err != nil {
		return nil, err
	}
	return decodeYear(resp)
}

func decodeYear(resp *apiclient.Response) (*AcademicYear, error) {
	var year AcademicYear
	if err := resp.Decode(&year); err != nil {
		return nil, err
	}
	return &year, nil
}
