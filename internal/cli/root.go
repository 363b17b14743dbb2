package cli

import (
	"fmt"

	"github.com/jrsteele09/go-school-client/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the schoolctl command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "schoolctl",
		Short: "Command-line client for the school management platform",
		Long: `schoolctl talks to the school management API on behalf of a logged-in user.

Log in once with "schoolctl login"; the token pair is kept in the session
store and the access token is refreshed automatically when it expires.

Configuration is read from SCHOOL_* environment variables, a .env file in the
working directory, and ~/.schoolctl/config.yaml. Flags win over all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", config.DefaultFile(), "config file")
	flags.StringVarP(&app.output, "output", "o", outputYAML, "output format (yaml, json)")
	flags.String("base-url", "", "API root, overrides SCHOOL_BASE_URL")
	flags.String("session-store", "", "session store (file, memory, redis), overrides SCHOOL_SESSION_STORE")
	flags.String("log-level", "", "log level (debug, info, warn, error), overrides SCHOOL_LOG_LEVEL")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newStatusCommand(app),
		newProfileCommand(app),
		newPasswordCommand(app),
		newSchoolsCommand(app),
		newClassesCommand(app),
		newTeachersCommand(app),
		newStudentsCommand(app),
		newSubjectsCommand(app),
		newAcademicsCommand(app),
		newEbooksCommand(app),
		newVersionCommand(app),
	)
	return root
}

var flagOverrides = map[string]string{
	"base-url":      "SCHOOL_BASE_URL",
	"session-store": "SCHOOL_SESSION_STORE",
	"log-level":     "SCHOOL_LOG_LEVEL",
}

func (a *App) configure(cmd *cobra.Command) error {
	switch a.output {
	case outputYAML, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q, use yaml or json", a.output)
	}

	if err := config.Load(a.configFile, cmd.Flags().Changed("config")); err != nil {
		return err
	}
	for flag, envVar := range flagOverrides {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			config.Override(envVar, f.Value.String())
		}
	}
	a.Logger = NewLogger(a.Err, a.Config.GetLogLevel())
	return nil
}
