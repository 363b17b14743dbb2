// Package passwords resets forgotten passwords through an emailed one-time
// code and changes the password of the logged-in user.
package passwords

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-school-client/apiclient"
	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/sessions"
	fakesessionstore "github.com/jrsteele09/go-school-client/sessions/repofakes"
	"github.com/jrsteele09/go-school-client/users"
	"github.com/pkg/errors"
)

const (
	basePath           = "/core/password_manager"
	sendCodePath       = basePath + "/reset_password"
	verifyCodePath     = basePath + "/verify_otp"
	changePasswordPath = basePath + "/change_or_set_password"
)

type sendCodeRequest struct {
	UserName string `json:"user_name"`
}

type verifyCodeRequest struct {
	UserName string `json:"user_name"`
	OTP      string `json:"otp"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password"`
}

// Verification is the result of a successful code check. AccessToken is
// short-lived and only good for setting a new password.
type Verification struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *Service {
	return &Service{client: client}
}

// SendVerificationCode emails a one-time code to the account's address.
func (s *Service) SendVerificationCode(ctx context.Context, userName string) (string, error) {
	if userName == "" {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "username is required")
	}
	resp, err := s.client.Post(ctx, sendCodePath, sendCodeRequest{UserName: userName})
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

// VerifyCode checks otp and returns the temporary token for ResetPassword.
func (s *Service) VerifyCode(ctx context.Context, userName, otp string) (*Verification, error) {
	if userName == "" || otp == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "username and code are required")
	}
	resp, err := s.client.Post(ctx, verifyCodePath, verifyCodeRequest{UserName: userName, OTP: otp})
	if err != nil {
		return nil, err
	}

	var v Verification
	if err := resp.Decode(&v); err != nil {
		return nil, err
	}
	if v.AccessToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "[VerifyCode] no reset token in response")
	}
	return &v, nil
}

// ResetPassword sets a new password using the temporary token from VerifyCode.
// The call goes through a throwaway session so the stored login is untouched,
// and a rejected token is reported as is instead of being refreshed.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) (string, error) {
	if err := checkNewPassword("", newPassword, confirmPassword); err != nil {
		return "", err
	}

	sm := sessions.NewManager(fakesessionstore.NewFakeSessionStore())
	if err := sm.SetAccessToken(ctx, resetToken); err != nil {
		return "", errors.Wrap(err, "[ResetPassword]")
	}
	client, err := apiclient.New(s.client.BaseURL(), sm,
		apiclient.WithHTTPClient(s.client.HTTPClient()),
		apiclient.WithLoginPath(s.client.LoginPath()),
		apiclient.WithNavigator(apiclient.NewLocation(s.client.LoginPath())),
	)
	if err != nil {
		return "", errors.Wrap(err, "[ResetPassword]")
	}

	resp, err := client.Do(ctx, apiclient.NewRequest(http.MethodPost, changePasswordPath,
		apiclient.WithJSON(changePasswordRequest{NewPassword: newPassword})))
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

// ChangePassword changes the logged-in user's password.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) (string, error) {
	if oldPassword == "" {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "old password is required")
	}
	if err := checkNewPassword(oldPassword, newPassword, confirmPassword); err != nil {
		return "", err
	}

	resp, err := s.client.Post(ctx, changePasswordPath, changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return "", err
	}
	return apiclient.DecodeMessage(resp)
}

func checkNewPassword(oldPassword, newPassword, confirmPassword string) error {
	if newPassword == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "new password is required")
	}
	if newPassword != confirmPassword {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "new password and confirm password do not match")
	}
	if oldPassword != "" && oldPassword == newPassword {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "new password cannot be the same as old password")
	}
	return users.ValidatePasswordStrength(newPassword)
}
