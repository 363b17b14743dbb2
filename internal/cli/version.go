package cli

import (
	"runtime"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

func newVersionCommand(app *App) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the schoolctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !short {
				banner := figure.NewFigure(app.Config.GetAppName(), "cybermedium", true)
				app.printf("%s\n", banner.String())
			}
			app.printf("%s %s (%s/%s)\n", app.Config.GetAppName(), app.Version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "skip the banner")
	return cmd
}
