package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	seenNames := make(map[string]bool)
	for i := range schema.Floors {
		f := &schema.Floors[i]
		prefix := fmt.Sprintf("floors[%d]", i)
		name := strings.ToLower(strings.TrimSpace(f.Name))
		if name != "" {
			if seenNames[name] {
				errs = append(errs, fmt.Errorf("%s: duplicate floor name %q", prefix, f.Name))
			}
			seenNames[name] = true
		}
		if f.Order != nil && *f.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must be >= 0", prefix))
		}
		if f.Image != nil {
			if f.Image.URI == "" {
				errs = append(errs, fmt.Errorf("%s.image.uri is required", prefix))
			}
			if f.Image.Width < 0 || f.Image.Height < 0 {
				errs = append(errs, fmt.Errorf("%s.image size must not be negative", prefix))
			}
		}
		errs = append(errs, validateScene(prefix+".scene", &f.Scene)...)
	}

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	probe := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
	if err := probe.ValidateShortID(); err != nil {
		errs = append(errs, fmt.Errorf("project.shortId: %w", err))
	}

	return errs
}

func validateScene(prefix string, sc *SceneImport) []error {
	var errs []error

	ids := make(map[string]bool)
	types := make(map[string]domain.DeviceType)
	for j, n := range sc.Nodes {
		np := fmt.Sprintf("%s.nodes[%d]", prefix, j)
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", np))
		} else if ids[n.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", np, n.ID))
		}
		ids[n.ID] = true

		t, err := domain.ParseDeviceType(n.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", np, err))
		}
		types[n.ID] = t

		if !inUnit(n.X) || !inUnit(n.Y) {
			errs = append(errs, fmt.Errorf("%s: position (%g, %g) is outside the unit square", np, n.X, n.Y))
		}
		if n.Scale != nil && !(*n.Scale > 0) {
			errs = append(errs, fmt.Errorf("%s.scale must be positive", np))
		}
		if _, err := domain.ParseInstallStatus(n.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", np, err))
		}
	}

	// Rack references need every node's type, so they are checked last.
	for j, n := range sc.Nodes {
		if n.ParentRackID == "" {
			continue
		}
		np := fmt.Sprintf("%s.nodes[%d]", prefix, j)
		rt, ok := types[n.ParentRackID]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%s.parentRackId %q not found", np, n.ParentRackID))
		case !rt.IsRack():
			errs = append(errs, fmt.Errorf("%s.parentRackId %q is not a rack", np, n.ParentRackID))
		case types[n.ID].IsRack():
			errs = append(errs, fmt.Errorf("%s: racks cannot be nested", np))
		}
	}

	for j, c := range sc.Cables {
		cp := fmt.Sprintf("%s.cables[%d]", prefix, j)
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", cp))
		} else if ids[c.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", cp, c.ID))
		}
		ids[c.ID] = true

		if len(c.Points) < 2 {
			errs = append(errs, fmt.Errorf("%s needs at least 2 points, got %d", cp, len(c.Points)))
		}
		for k, pt := range c.Points {
			if !inUnit(pt.X) || !inUnit(pt.Y) {
				errs = append(errs, fmt.Errorf("%s.points[%d] is outside the unit square", cp, k))
			}
		}
		if c.Color != "" && !hexColor.MatchString(c.Color) {
			errs = append(errs, fmt.Errorf("%s.color %q must look like #rrggbb", cp, c.Color))
		}
		if _, err := domain.ParseInstallStatus(c.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cp, err))
		}
	}

	return errs
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
