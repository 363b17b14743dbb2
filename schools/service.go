// Package schools manages schools and the boards they follow. All calls
// require a Super Admin session.
package schools

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-school-client/apiclient"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	basePath    = "/school/manage_school"
	createPath  = basePath + "/create"
	listPath    = basePath + "/school_list"
	getByIDPath = basePath + "/getSchoolById"
	updatePath  = basePath + "/updateSchoolById"
	boardsPath  = basePath + "/board_list"
)

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// Create registers a new school and returns the server's confirmation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := s.client.Post(ctx, createPath, req)
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

func (s *Service) List(ctx context.Context) ([]School, error) {
	resp, err := s.client.Get(ctx, listPath, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]School](resp, "schools")
}

func (s *Service) GetByID(ctx context.Context, schoolID int) (*Detail, error) {
	query := utils.Query(map[string]any{"school_id": strconv.Itoa(schoolID)})
	resp, err := s.client.Get(ctx, getByIDPath, query)
	if err != nil {
		return nil, err
	}
	detail, err := apiclient.DecodeField[Detail](resp, "school")
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := s.client.Do(ctx, apiclient.NewRequest(http.MethodPut, updatePath, apiclient.WithJSON(req)))
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

// ListBoards returns every board a school can be mapped to.
func (s *Service) ListBoards(ctx context.Context) ([]Board, error) {
	resp, err := s.client.Get(ctx, boardsPath, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeField[[]Board](resp, "boards")
}
