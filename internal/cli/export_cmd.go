package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export a project as an installer workbook or JSON",
		Long: "Export a project's floors. xlsx writes a workbook with summary, device, " +
			"cable and material sheets; json writes a snapshot that 'project import' reads back.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("%s.%s", strings.ToLower(p.DisplayID()), f)
			}

			var stop func()
			if app.interactive() && out != "-" {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Exporting "+p.DisplayID())
			}
			floors, err := app.SiteMap.LoadFloors(ctx, p.ID)
			var buf bytes.Buffer
			if err == nil {
				err = export.Write(&buf, f, p, floors)
			}
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			app.logger().Info("project exported", "project_id", p.ID, "format", string(f), "path", out, "floors", len(floors))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d floors) to %s\n", p.DisplayID(), len(floors), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "Export format (xlsx|json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, or - for stdout (default <shortid>.<format>)")

	return cmd
}
