package cli

import (
	"strings"

	"github.com/jrsteele09/go-school-client/users"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var userName, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Log in with a user name and password. The password is prompted for when
--password is not given.`,
		Example: "  schoolctl login --user admin1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}
			if userName == "" {
				if userName, err = app.prompt("User name: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = app.secret("Password: "); err != nil {
					return err
				}
			}

			user, err := svc.Login(cmd.Context(), strings.TrimSpace(userName), password)
			if err != nil {
				return err
			}
			app.printf("Logged in as %s (%s)\n", user.UserName, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userName, "user", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted for when omitted)")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}
			if err := svc.Logout(cmd.Context()); err != nil {
				return err
			}
			app.printf("Logged out\n")
			return nil
		},
	}
}

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in and when the access token expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.authService()
			if err != nil {
				return err
			}
			st, err := svc.Status(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(st)
		},
	}
}

func newProfileCommand(app *App) *cobra.Command {
	var academicYearID int
	cmd := &cobra.Command{
		Use:   "profile [user_name]",
		Short: "Show a user profile (your own by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.APIClient()
			if err != nil {
				return err
			}
			var userName string
			if len(args) == 1 {
				userName = args[0]
			}
			profile, err := users.NewService(client).GetByUserName(cmd.Context(), userName, academicYearID)
			if err != nil {
				return err
			}
			return app.render(profile)
		},
	}
	cmd.Flags().IntVar(&academicYearID, "year", 0, "academic year ID for the student class assignment")
	return cmd
}
