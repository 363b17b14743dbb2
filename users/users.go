package users

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/internal/utils"
)

// RoleType is the role name the backend puts on every user.
type RoleType string

const (
	RoleSuperAdmin RoleType = "Super Admin" // Manages every school and the board list
	RoleAdmin      RoleType = "Admin"       // Manages one school: classes, teachers, students
	RoleTeacher    RoleType = "Teacher"     // Teaches classes within one school
	RoleStudent    RoleType = "Student"     // Enrolled in one class of one school
)

// AllRoles lists the roles in descending order of privilege.
var AllRoles = []RoleType{RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleStudent}

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DashboardPath is the landing page for users of role r.
func (r RoleType) DashboardPath() string {
	switch r {
	case RoleSuperAdmin:
		return "/dashboard/super-admin"
	case RoleAdmin:
		return "/dashboard/admin"
	case RoleTeacher:
		return "/dashboard/teacher"
	case RoleStudent:
		return "/dashboard/student"
	default:
		return "/dashboard"
	}
}

// User is the profile returned by login and cached as the current user.
type User struct {
	Email     string     `json:"email,omitempty"`      // User's email address
	UserName  string     `json:"user_name"`            // Unique login name
	Role      RoleType   `json:"role,omitempty"`       // One of AllRoles
	LastLogin *time.Time `json:"last_login,omitempty"` // Previous login, nil on first login
	SchoolID  *int       `json:"school_id,omitempty"`  // nil for super admins
}

// Decode parses the raw user JSON cached at login.
func Decode(raw []byte) (*User, error) {
	if len(raw) == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[users Decode] %v", err)
	}
	return &u, nil
}

// IsSuperAdmin returns true if the user has super admin privileges
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// CanManageSchool reports whether the user may administer schoolID.
// Super admins may manage any school; admins only their own.
func (u *User) CanManageSchool(schoolID int) bool {
	switch u.Role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return utils.Deref(u.SchoolID, -1) == schoolID
	default:
		return false
	}
}

// HasRole checks if the user has any of roles.
func (u *User) HasRole(roles ...RoleType) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
// - Contains at least one special character
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return fmt.Errorf("password must be at least 8 characters long: %w", apperrors.ErrWeakPassword)
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case char <= unicode.MaxASCII && unicode.IsUpper(char):
			hasUpper = true
		case char <= unicode.MaxASCII && unicode.IsLower(char):
			hasLower = true
		case char <= unicode.MaxASCII && unicode.IsDigit(char):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter: %w", apperrors.ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter: %w", apperrors.ErrWeakPassword)
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number: %w", apperrors.ErrWeakPassword)
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character: %w", apperrors.ErrWeakPassword)
	}

	return nil
}
