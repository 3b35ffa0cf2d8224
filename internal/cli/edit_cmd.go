package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/sitemap/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Open a project's floor plans in the interactive editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("edit needs an interactive terminal")
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			m := newAppModel(app)
			m.viewStack = append(m.viewStack, newCanvasView(m.state, p))
			return runTUI(app, m)
		},
	}
}

// runTUI runs the model full-screen with mouse reporting. Console logging is
// diverted to a file while the program owns the terminal.
func runTUI(app *App, m tea.Model) error {
	if app.Config == nil || app.Config.Log.File == "" {
		dir := "."
		if app.Config != nil {
			dir = filepath.Dir(app.Config.DB)
		}
		f, err := os.OpenFile(filepath.Join(dir, "sitemap.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			restore := logging.Console.Divert(f)
			defer func() {
				restore()
				f.Close()
			}()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
