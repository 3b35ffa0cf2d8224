package cli

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/spf13/cobra"
)

func newFloorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "floor",
		Short: "Manage a project's floors",
	}

	cmd.AddCommand(
		newFloorListCmd(app),
		newFloorAddCmd(app),
		newFloorRenameCmd(app),
		newFloorRemoveCmd(app),
		newFloorReorderCmd(app),
		newFloorImageCmd(app),
	)

	return cmd
}

func newFloorListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List floors with placement and install progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			floors, err := app.SiteMap.LoadFloors(ctx, p.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(floors) == 0 {
				fmt.Fprintf(out, "No floors yet. Add one with: sitemap floor add %s NAME\n", p.ShortID)
				return nil
			}
			fmt.Fprintln(out, formatter.FormatFloorList(p, floors))
			return nil
		},
	}
}

func newFloorAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add PROJECT [NAME]",
		Short: "Append a floor",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			name := ""
			if len(args) > 1 {
				name = args[1]
			}

			var added string
			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				added = f.AddFloor(name).Name
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added floor %s to %s\n", added, p.DisplayID())
			return nil
		},
	}
}

func newFloorRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROJECT FLOOR NAME",
		Short: "Rename a floor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				pos, err := resolveFloor(f, args[1])
				if err != nil {
					return err
				}
				if !f.RenameFloor(f.List()[pos].ID, args[2]) {
					return fmt.Errorf("floor name is required")
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed floor to %s\n", args[2])
			return nil
		},
	}
}

func newFloorRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT FLOOR",
		Short: "Remove a floor (the last floor is cleared instead)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			var (
				name    string
				cleared bool
			)
			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				pos, err := resolveFloor(f, args[1])
				if err != nil {
					return err
				}
				fl := f.List()[pos]
				name, cleared = fl.Name, f.Len() == 1
				f.DeleteFloor(fl.ID)
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cleared {
				fmt.Fprintf(out, "Cleared floor %s (a project keeps at least one floor)\n", name)
				return nil
			}
			fmt.Fprintf(out, "Removed floor %s\n", name)
			return nil
		},
	}
}

func newFloorReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder PROJECT FROM TO",
		Short: "Swap two floors by position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				from, err := resolveFloor(f, args[1])
				if err != nil {
					return err
				}
				to, err := resolveFloor(f, args[2])
				if err != nil {
					return err
				}
				f.ReorderFloor(from, to)
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reordered floors of %s\n", p.DisplayID())
			return nil
		},
	}
}

func newFloorImageCmd(app *App) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "image PROJECT FLOOR PATH",
		Short: "Attach a floor-plan image",
		Long: "Attach a floor-plan image. Local PNG, JPEG and GIF files are measured " +
			"automatically; pass --width and --height for other images or remote URIs.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			uri := args[2]
			if !cmd.Flags().Changed("width") || !cmd.Flags().Changed("height") {
				uri, width, height, err = measureImage(uri)
				if err != nil {
					return err
				}
			}

			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				pos, err := resolveFloor(f, args[1])
				if err != nil {
					return err
				}
				f.SetImage(f.List()[pos].ID, uri, width, height)
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%dx%d)\n", uri, width, height)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels")

	return cmd
}

// measureImage reads a local image's natural size and returns its absolute
// path.
func measureImage(path string) (string, int, int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", 0, 0, fmt.Errorf("resolving image path: %w", err)
	}
	fh, err := os.Open(abs)
	if err != nil {
		return "", 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer fh.Close()

	cfg, _, err := image.DecodeConfig(fh)
	if err != nil {
		return "", 0, 0, fmt.Errorf("reading image size of %s: %w", path, err)
	}
	return abs, cfg.Width, cfg.Height, nil
}
