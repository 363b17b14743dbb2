// Package classes manages the class sections of a school.
package classes

import (
	"context"
	"strconv"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath      = "/classes/class_manager"
	availablePath = basePath + "/getAvailableClassList"
	listPath      = basePath + "/getClassesBySchoolId"
	createPath    = basePath + "/createClass"
	getByIDPath   = basePath + "/getClassById"
	updatePath    = basePath + "/updateClassById"
)

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// ListAvailable returns the class numbers a school can create sections for.
func (s *Service) ListAvailable(ctx context.Context) ([]Available, error) {
	resp, err := s.client.Get(ctx, availablePath, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]Available](resp, "data")
}

func (s *Service) ListBySchool(ctx context.Context, schoolID, academicYearID int) ([]Class, error) {
	query := utils.Query(map[string]any{
		"school_id":        schoolID,
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, listPath, query)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]Class](resp, "classes")
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Created, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := s.client.Post(ctx, createPath, req)
	if err != nil {
		return nil, err
	}
	created, err := apiclient.DecodeField[Created](resp, "class")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns the class and the students assigned to it for the year.
func (s *Service) GetByID(ctx context.Context, schoolID, classID, academicYearID int) (*Detail, error) {
	if classID <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "[GetByID] class ID is required")
	}
	query := utils.Query(map[string]any{
		"school_id":        schoolID,
		"class_id":         strconv.Itoa(classID),
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, getByIDPath, query)
	if err != nil {
		return nil, err
	}
	detail, err := apiclient.DecodeField[Detail](resp, "class")
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

func formatName(classNumber int, section string) string {
	if section == "" {
		return strconv.Itoa(classNumber)
	}
	return strconv.Itoa(classNumber) + "-" + section
}
