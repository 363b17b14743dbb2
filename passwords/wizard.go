package passwords

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
)

// Step is a stage of the forgotten-password flow.
type Step int

const (
	StepSendCode Step = iota // ask for the username, email a code
	StepVerify               // check the emailed code
	StepReset                // choose the new password
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSendCode:
		return "send_code"
	case StepVerify:
		return "verify"
	case StepReset:
		return "reset"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Wizard walks one user through SendCode, Verify and Reset in that order.
// Each step is only reachable once the one before it succeeded; Back returns
// to the previous step.
type Wizard struct {
	svc *Service

	mu         sync.Mutex
	step       Step
	userName   string
	resetToken string
}

func NewWizard(svc *Service) *Wizard {
	return &Wizard{svc: svc, step: StepSendCode}
}

// Step returns the step the wizard is waiting on.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// UserName returns the account the code was sent for.
func (w *Wizard) UserName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.userName
}

// SendCode emails a code to userName. It may be repeated from the verify step
// to resend the code.
func (w *Wizard) SendCode(ctx context.Context, userName string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepSendCode && w.step != StepVerify {
		return "", w.outOfOrder(StepSendCode)
	}
	msg, err := w.svc.SendVerificationCode(ctx, userName)
	if err != nil {
		return "", err
	}
	w.userName = userName
	w.resetToken = ""
	w.step = StepVerify
	return msg, nil
}

// Verify checks the emailed code.
func (w *Wizard) Verify(ctx context.Context, otp string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepVerify {
		return "", w.outOfOrder(StepVerify)
	}
	v, err := w.svc.VerifyCode(ctx, w.userName, otp)
	if err != nil {
		return "", err
	}
	w.resetToken = v.AccessToken
	w.step = StepReset
	return v.Message, nil
}

// Reset sets the new password and finishes the wizard.
func (w *Wizard) Reset(ctx context.Context, newPassword, confirmPassword string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepReset {
		return "", w.outOfOrder(StepReset)
	}
	msg, err := w.svc.ResetPassword(ctx, w.resetToken, newPassword, confirmPassword)
	if err != nil {
		return "", err
	}
	w.resetToken = ""
	w.step = StepDone
	return msg, nil
}

// Back returns to the previous step. The reset token is dropped when leaving
// the reset step.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepVerify:
		w.step = StepSendCode
	case StepReset:
		w.resetToken = ""
		w.step = StepVerify
	}
	return w.step
}

func (w *Wizard) outOfOrder(want Step) error {
	return apperrors.Wrapf(apperrors.ErrWizardStep, "[Wizard] %s requested while at %s", want, w.step)
}
