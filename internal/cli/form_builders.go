package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/i18n"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// sitemapHuhTheme returns a custom huh theme using the Gruvbox palette.
func sitemapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themedForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(sitemapHuhTheme()).WithShowHelp(false)
}

// ── project ──────────────────────────────────────────────────────────────────

type newProjectValues struct {
	ShortID string
	Name    string
	Site    string
}

func (v *newProjectValues) project() *domain.Project {
	return &domain.Project{
		ShortID: strings.ToUpper(strings.TrimSpace(v.ShortID)),
		Name:    strings.TrimSpace(v.Name),
		Site:    strings.TrimSpace(v.Site),
		Status:  domain.ProjectActive,
	}
}

func newProjectForm(v *newProjectValues) *huh.Form {
	return themedForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Short ID").
				Placeholder("ACME01").
				Value(&v.ShortID).
				Validate(validateShortID),
			huh.NewInput().
				Title("Name").
				Value(&v.Name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Site address").
				Value(&v.Site),
		),
	)
}

func validateShortID(s string) error {
	p := &domain.Project{ShortID: strings.ToUpper(strings.TrimSpace(s))}
	return p.ValidateShortID()
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// ── canvas ───────────────────────────────────────────────────────────────────

func paletteForm(choice *domain.DeviceType) *huh.Form {
	opts := make([]huh.Option[domain.DeviceType], 0, len(domain.DeviceTypes))
	for i, t := range domain.DeviceTypes {
		label := i18n.DeviceLabel(t)
		if i < 9 {
			label = fmt.Sprintf("%d  %s", i+1, label)
		} else {
			label = "   " + label
		}
		opts = append(opts, huh.NewOption(label, t))
	}
	return themedForm(
		huh.NewGroup(
			huh.NewSelect[domain.DeviceType]().
				Title("Place device").
				Options(opts...).
				Height(12).
				Value(choice),
		),
	)
}

type statusValues struct {
	Status    domain.InstallStatus
	Photo     string
	Note      string
	Materials string
}

func newStatusValues(st domain.InstallStatus, ev *domain.Evidence) *statusValues {
	v := &statusValues{Status: st}
	if ev != nil {
		v.Photo, v.Note = ev.PhotoURI, ev.Note
		v.Materials = formatMaterials(ev.Materials)
	}
	return v
}

// evidence parses the form's evidence fields. Statuses that carry no
// evidence yield nil.
func (v *statusValues) evidence() (*domain.Evidence, error) {
	if !v.Status.CarriesEvidence() {
		return nil, nil
	}
	mats, err := parseMaterials([]string{v.Materials})
	if err != nil {
		return nil, err
	}
	return buildEvidence(v.Photo, v.Note, mats), nil
}

func statusForm(v *statusValues) *huh.Form {
	statuses := []domain.InstallStatus{
		domain.StatusUnset, domain.StatusPending, domain.StatusInstalled, domain.StatusCannotInstall,
	}
	opts := make([]huh.Option[domain.InstallStatus], 0, len(statuses))
	for _, s := range statuses {
		opts = append(opts, huh.NewOption(i18n.StatusLabel(s), s))
	}

	noEvidence := func() bool { return !v.Status.CarriesEvidence() }
	return themedForm(
		huh.NewGroup(
			huh.NewSelect[domain.InstallStatus]().
				Title(i18n.T("status.title", nil)).
				Options(opts...).
				Value(&v.Status),
		),
		huh.NewGroup(
			huh.NewInput().Title(i18n.T("status.photo", nil)).Value(&v.Photo),
			huh.NewInput().Title(i18n.T("status.note", nil)).Value(&v.Note),
			huh.NewInput().
				Title(i18n.T("status.materials", nil)).
				Placeholder("cable_m=12, anchors=4").
				Value(&v.Materials).
				Validate(func(s string) error {
					_, err := parseMaterials([]string{s})
					return err
				}),
		).WithHideFunc(noEvidence),
	)
}

func formatMaterials(m map[string]float64) string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m))
	for _, k := range sortedMaterialNames(m) {
		parts = append(parts, fmt.Sprintf("%s=%g", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func renameForm(name *string) *huh.Form {
	return themedForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Floor name").
				Value(name).
				Validate(validateRequired("floor name")),
		),
	)
}

// rackForm picks one of the racks on the floor.
func rackForm(racks []domain.DeviceNode, result *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(racks))
	for _, r := range racks {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", i18n.DeviceLabel(r.Type), formatter.TruncID(r.ID)), r.ID))
	}
	return themedForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mount in rack").
				Options(opts...).
				Value(result),
		),
	)
}

func confirmForm(title string, ok *bool) *huh.Form {
	return themedForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(ok),
		),
	)
}
