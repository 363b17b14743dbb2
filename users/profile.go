package users

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/internal/validate"
)

const (
	profileBasePath    = "/core/user_profile"
	getByUserNamePath  = profileBasePath + "/getUserByUserName"
	editByUserNamePath = profileBasePath + "/editUserByUserName"
)

// Profile is the full user record. Teacher and student fields are only
// populated for users of those roles.
type Profile struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	UserName    string `json:"user_name"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`

	// Teacher
	JoiningDate      string `json:"joining_date,omitempty"`
	Qualification    string `json:"qualification,omitempty"`
	Experience       string `json:"experience,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	// Student
	AdmissionDate string `json:"admission_date,omitempty"`
	ParentName    string `json:"parent_name,omitempty"`
	ParentPhone   string `json:"parent_phone,omitempty"`
	ParentEmail   string `json:"parent_email,omitempty"`
	ClassID       *int   `json:"class_id,omitempty"`
	ClassNumber   *int   `json:"class_number,omitempty"`
	Section       string `json:"section,omitempty"`
	RollNumber    string `json:"roll_number,omitempty"`
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// EditProfileRequest carries the fields to change. Empty fields are left as they are.
type EditProfileRequest struct {
	UserName         string `json:"user_name" validate:"notblank"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Address          string `json:"address,omitempty"`
	DateOfBirth      string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	ParentName       string `json:"parent_name,omitempty"`
	ParentPhone      string `json:"parent_phone,omitempty"`
	ParentEmail      string `json:"parent_email,omitempty" validate:"omitempty,email"`
}

// Service reads and edits user profiles.
type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// GetByUserName fetches a profile. An empty userName means the caller's own
// profile; academicYearID selects the class assignment shown for students.
func (s *Service) GetByUserName(ctx context.Context, userName string, academicYearID int) (*Profile, error) {
	query := utils.Query(map[string]any{
		"user_name":        userName,
		"academic_year_id": academicYearID,
	})
	resp, err := s.client.Get(ctx, getByUserNamePath, query)
	if err != nil {
		return nil, err
	}

	var body struct {
		User *Profile `json:"user"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.User == nil {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "[GetByUserName] %s", userName)
	}
	return body.User, nil
}

// EditProfile updates the profile of req.UserName and returns the server's message.
func (s *Service) EditProfile(ctx context.Context, req EditProfileRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	resp, err := s.client.Do(ctx, apiclient.NewRequest(http.MethodPut, editByUserNamePath, apiclient.WithJSON(req)))
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}
