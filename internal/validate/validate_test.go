package validate_test

import (
	"testing"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/validate"
	"github.com/stretchr/testify/require"
)

type newClass struct {
	Name     string `json:"class_name" validate:"notblank"`
	SchoolID int    `json:"school_id" validate:"required,gt=0"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,strong_password"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, validate.Struct(newClass{Name: "5A", SchoolID: 3}))

	err := validate.Struct(newClass{Name: "  ", Email: "nope", Password: "short"})
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	var fields validate.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Equal(t, "class_name cannot be blank", fields["class_name"])
	require.Equal(t, "school_id is a required field", fields["school_id"])
	require.Equal(t, "email must be a valid email address", fields["email"])
	require.Equal(t, "password "+validate.PasswordRuleMessage, fields["password"])
	require.Contains(t, err.Error(), "class_name cannot be blank")
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Secret#1", true},
		{"Longer password 9", true},
		{"Sh#1", false},
		{"alllower#1", false},
		{"ALLUPPER#1", false},
		{"NoDigits#", false},
		{"NoSpecial1", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			require.Equal(t, tt.want, validate.StrongPassword(tt.password))
		})
	}
}
