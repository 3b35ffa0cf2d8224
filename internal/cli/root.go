package cli

import (
	"log/slog"

	"github.com/alexanderramin/sitemap/internal/config"
	"github.com/alexanderramin/sitemap/internal/logging"
	"github.com/alexanderramin/sitemap/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	SiteMap  service.SiteMapService
	Import   service.ImportService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. The bare root
	// command opens the TUI only when it is.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return logging.Discard()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "sitemap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitemap",
		Short:         "Annotate site floor plans with devices, cables and install status",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app, newAppModel(app))
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newProjectCmd(app),
		newFloorCmd(app),
		newDeviceCmd(app),
		newCableCmd(app),
		newExportCmd(app),
		newEditCmd(app),
	)

	return root
}
