package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUpdateCmd(app),
		newProjectArchiveCmd(app),
		newProjectUnarchiveCmd(app),
		newProjectRemoveCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, site, shortID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ShortID: strings.ToUpper(shortID),
				Name:    name,
				Site:    strings.TrimSpace(site),
				Status:  domain.ProjectActive,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. ACME01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&site, "site", "", "Site address")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}

			fmt.Fprintln(out, formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, site, status, shortID string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("id") {
				p.ShortID = strings.ToUpper(shortID)
				if err := p.ValidateShortID(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("name") {
				if strings.TrimSpace(name) == "" {
					return fmt.Errorf("project name is required")
				}
				p.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("site") {
				p.Site = strings.TrimSpace(site)
			}
			if cmd.Flags().Changed("status") {
				switch s := domain.ProjectStatus(status); s {
				case domain.ProjectActive, domain.ProjectDone:
					p.Status = s
				default:
					return fmt.Errorf("invalid status %q (use active or done; archive with 'project archive')", status)
				}
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&site, "site", "", "Site address")
	cmd.Flags().StringVar(&status, "status", "", "Project status (active|done)")

	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s\n", p.DisplayID())
			return nil
		},
	}
}

func newProjectUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive ID",
		Short: "Unarchive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Unarchive(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived project %s\n", p.DisplayID())
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and its floors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", p.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the project is not archived")

	return cmd
}

func newProjectImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return fmt.Errorf("import is not available")
			}
			result, err := app.Import.ImportProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s [%s]: %d floors, %d devices, %d cables\n",
				result.Project.Name, result.Project.ShortID,
				result.FloorCount, result.NodeCount, result.CableCount)
			return nil
		},
	}
}
