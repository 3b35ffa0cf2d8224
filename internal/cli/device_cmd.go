package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/i18n"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/spf13/cobra"
)

func newDeviceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Inspect and annotate placed devices",
	}

	cmd.AddCommand(
		newDeviceListCmd(app),
		newDeviceTypesCmd(),
		newDevicePlaceCmd(app),
		newDeviceRackCmd(app),
		newItemStatusCmd(app, itemDevice),
	)

	return cmd
}

func newCableCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cable",
		Short: "Inspect and annotate cable runs",
	}

	cmd.AddCommand(
		newCableListCmd(app),
		newItemStatusCmd(app, itemCable),
	)

	return cmd
}

// loadFloorForList resolves a project and one of its floors without opening
// an editing session.
func loadFloorForList(cmd *cobra.Command, app *App, projectRef, floorRef string) (*domain.Floor, error) {
	ctx := cmd.Context()
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return nil, err
	}
	f, err := app.SiteMap.Open(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	pos, err := resolveFloor(f, floorRef)
	if err != nil {
		return nil, err
	}
	return f.List()[pos], nil
}

func newDeviceListCmd(app *App) *cobra.Command {
	var floorRef string

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List devices on a floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := loadFloorForList(cmd, app, args[0], floorRef)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDeviceList(fl))
			return nil
		},
	}

	cmd.Flags().StringVar(&floorRef, "floor", "", "Floor position, name or ID (default: first)")

	return cmd
}

func newCableListCmd(app *App) *cobra.Command {
	var floorRef string

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List cables on a floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := loadFloorForList(cmd, app, args[0], floorRef)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCableList(fl))
			return nil
		},
	}

	cmd.Flags().StringVar(&floorRef, "floor", "", "Floor position, name or ID (default: first)")

	return cmd
}

func newDeviceTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the device catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(domain.DeviceTypes))
			for i, t := range domain.DeviceTypes {
				rows = append(rows, []string{fmt.Sprint(i + 1), string(t), i18n.DeviceLabel(t)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable([]string{"#", "TYPE", "LABEL"}, rows))
			return nil
		},
	}
}

func newDevicePlaceCmd(app *App) *cobra.Command {
	var (
		floorRef, typ string
		x, y          float64
	)

	cmd := &cobra.Command{
		Use:   "place PROJECT",
		Short: "Place a device at unit-square coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := domain.ParseDeviceType(typ)
			if err != nil {
				return err
			}
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			var id, floorName string
			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				pos, err := resolveFloor(f, floorRef)
				if err != nil {
					return err
				}
				f.OpenAt(pos)
				floorName = f.Active().Name
				var ok bool
				id, ok = f.Store().AddNodeAt(x, y, t)
				if !ok {
					return fmt.Errorf("could not place %s", t)
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Placed %s %s on %s\n", i18n.DeviceLabel(t), formatter.TruncID(id), floorName)
			return nil
		},
	}

	cmd.Flags().StringVar(&floorRef, "floor", "", "Floor position, name or ID (default: first)")
	cmd.Flags().StringVar(&typ, "type", "", "Device type (see 'device types')")
	cmd.Flags().Float64Var(&x, "x", 0.5, "Horizontal position, 0..1 (clamped)")
	cmd.Flags().Float64Var(&y, "y", 0.5, "Vertical position, 0..1 (clamped)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newDeviceRackCmd(app *App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "rack PROJECT DEVICE [RACK]",
		Short: "Mount a device in a rack, or unmount it with --remove",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !remove && len(args) < 3 {
				return fmt.Errorf("RACK is required unless --remove is set")
			}
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				deviceID, err := locateItem(f, itemDevice, args[1])
				if err != nil {
					return err
				}
				s := f.Store()
				if remove {
					if !s.RemoveDeviceFromRack(deviceID) {
						return fmt.Errorf("device %s is not in a rack", formatter.TruncID(deviceID))
					}
					return nil
				}
				rackID, err := findOnActive(s, args[2])
				if err != nil {
					return err
				}
				if !s.AddDeviceToRack(deviceID, rackID) {
					return fmt.Errorf("cannot mount %s in %s (racks cannot nest; a device sits in one rack)",
						formatter.TruncID(deviceID), formatter.TruncID(rackID))
				}
				return nil
			})
			if err != nil {
				return err
			}

			if remove {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("rack.removed", nil))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("rack.added", nil))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the device from its rack")

	return cmd
}

// findOnActive resolves a device ID prefix on the active floor only.
func findOnActive(s *scene.Store, prefix string) (string, error) {
	var found string
	for _, n := range s.Nodes() {
		if strings.HasPrefix(n.ID, prefix) {
			if found != "" {
				return "", fmt.Errorf("device ID prefix %q is ambiguous", prefix)
			}
			found = n.ID
		}
	}
	if found == "" {
		return "", fmt.Errorf("device not found on this floor: %q", prefix)
	}
	return found, nil
}

func newItemStatusCmd(app *App, kind itemKind) *cobra.Command {
	var (
		status, photo, note string
		materials           []string
	)

	noun := "device"
	if kind == itemCable {
		noun = "cable"
	}

	cmd := &cobra.Command{
		Use:   "status PROJECT " + strings.ToUpper(noun),
		Short: "Record the installation status of a " + noun,
		Long: "Record the installation status of a " + noun + ". Evidence (photo, note, " +
			"materials) is kept only for installed and cannot_install.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := domain.ParseInstallStatus(status)
			if err != nil {
				return err
			}
			mats, err := parseMaterials(materials)
			if err != nil {
				return err
			}
			ev := buildEvidence(photo, note, mats)
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			err = app.SiteMap.Edit(ctx, p.ID, func(f *scene.Floors) error {
				id, err := locateItem(f, kind, args[1])
				if err != nil {
					return err
				}
				s := f.Store()
				if kind == itemCable {
					s.SetCableStatus(id, st, ev)
				} else {
					s.SetDeviceStatus(id, st, ev)
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("status.updated", map[string]any{"status": i18n.StatusLabel(st)}))
			if ev != nil && !st.CarriesEvidence() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Evidence ignored for status "+i18n.StatusLabel(st)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "pending|installed|cannot_install|unset")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo URI")
	cmd.Flags().StringVar(&note, "note", "", "Free-text note")
	cmd.Flags().StringArrayVar(&materials, "material", nil, "Material used, name=qty (repeatable)")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
