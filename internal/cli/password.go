package cli

import (
	"strings"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/jrsteele09/go-school-client/passwords"
	"github.com/spf13/cobra"
)

const maxCodeAttempts = 3

func newPasswordCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change or reset a password",
	}

	change := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			old, err := app.secret("Current password: ")
			if err != nil {
				return err
			}
			next, confirm, err := app.newPassword()
			if err != nil {
				return err
			}
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			msg, err := passwords.NewService(client).ChangePassword(cmd.Context(), old, next, confirm)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}

	var userName string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset a forgotten password with an emailed code",
		Long: `Emails a one-time code to the account's address, asks for it, then sets a
new password. Type "resend" at the code prompt to have the code sent again.
The stored login session is not touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			wizard := passwords.NewWizard(passwords.NewService(client))
			ctx := cmd.Context()

			if userName == "" {
				if userName, err = app.prompt("User name: "); err != nil {
					return err
				}
			}
			msg, err := wizard.SendCode(ctx, strings.TrimSpace(userName))
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)

			for attempt := 1; wizard.Step() == passwords.StepVerify; {
				code, err := app.prompt("Verification code: ")
				if err != nil {
					return err
				}
				code = strings.TrimSpace(code)
				if strings.EqualFold(code, "resend") {
					if msg, err = wizard.SendCode(ctx, wizard.UserName()); err != nil {
						return err
					}
					app.printf("%s\n", msg)
					continue
				}
				msg, err = wizard.Verify(ctx, code)
				if err == nil {
					app.printf("%s\n", msg)
					break
				}
				if attempt == maxCodeAttempts || !apperrors.Is(err, apperrors.ErrUpstream) {
					return err
				}
				attempt++
				app.printf("%s\n", Describe(err))
			}

			next, confirm, err := app.newPassword()
			if err != nil {
				return err
			}
			msg, err = wizard.Reset(ctx, next, confirm)
			if err != nil {
				return err
			}
			app.printf("%s\n", msg)
			return nil
		},
	}
	reset.Flags().StringVarP(&userName, "user", "u", "", "user name")

	cmd.AddCommand(change, reset)
	return cmd
}

func (a *App) newPassword() (string, string, error) {
	next, err := a.secret("New password: ")
	if err != nil {
		return "", "", err
	}
	confirm, err := a.secret("Confirm new password: ")
	if err != nil {
		return "", "", err
	}
	return next, confirm, nil
}
