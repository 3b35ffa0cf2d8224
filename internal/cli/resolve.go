package cli

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/scene"
)

// resolveProject accepts a short ID (case-insensitive), a full ID, or a
// unique ID prefix.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	if p, err := app.Projects.Resolve(ctx, input); err == nil {
		return p, nil
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveFloor finds a floor's display position. The reference can be a
// 1-based position, a floor ID or ID prefix, or a floor name
// (case-insensitive). An empty reference means the active floor.
func resolveFloor(f *scene.Floors, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return f.ActivePosition(), nil
	}

	list := f.List()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(list) {
			return 0, fmt.Errorf("floor #%d out of range (1-%d)", n, len(list))
		}
		return n - 1, nil
	}

	for i, fl := range list {
		if fl.ID == ref {
			return i, nil
		}
	}
	for i, fl := range list {
		if strings.EqualFold(fl.Name, ref) {
			return i, nil
		}
	}

	found := -1
	for i, fl := range list {
		if strings.HasPrefix(fl.ID, ref) {
			if found >= 0 {
				return 0, fmt.Errorf("floor ID prefix %q is ambiguous", ref)
			}
			found = i
		}
	}
	if found < 0 {
		return 0, fmt.Errorf("floor not found: %q", ref)
	}
	return found, nil
}

type itemKind int

const (
	itemDevice itemKind = iota
	itemCable
)

// locateItem opens the floor holding the device or cable whose ID starts
// with prefix and returns its full ID. Floors are searched in display order.
func locateItem(f *scene.Floors, kind itemKind, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("ID is required")
	}

	var (
		matches []string
		pos     int
	)
	for i := 0; i < f.Len(); i++ {
		f.OpenAt(i)
		for _, id := range itemIDs(f.Store(), kind) {
			if strings.HasPrefix(id, prefix) {
				matches = append(matches, id)
				pos = i
			}
		}
	}

	noun := "device"
	if kind == itemCable {
		noun = "cable"
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", noun, prefix)
	case 1:
		f.OpenAt(pos)
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", noun, prefix, len(matches))
	}
}

func itemIDs(s *scene.Store, kind itemKind) []string {
	var out []string
	if kind == itemCable {
		for _, c := range s.Cables() {
			out = append(out, c.ID)
		}
		return out
	}
	for _, n := range s.Nodes() {
		out = append(out, n.ID)
	}
	return out
}

// parseMaterials reads "name=qty" pairs. Blank entries are skipped.
func parseMaterials(pairs []string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, pair := range pairs {
		for _, part := range strings.Split(pair, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name, qty, ok := strings.Cut(part, "=")
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return nil, fmt.Errorf("invalid material %q (want name=qty)", part)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(qty), 64)
			if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("invalid quantity for material %q: %q", name, qty)
			}
			out[name] += v
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// buildEvidence returns nil when every field is empty.
func buildEvidence(photo, note string, materials map[string]float64) *domain.Evidence {
	photo, note = strings.TrimSpace(photo), strings.TrimSpace(note)
	if photo == "" && note == "" && len(materials) == 0 {
		return nil
	}
	return &domain.Evidence{PhotoURI: photo, Note: note, Materials: materials}
}

func sortedMaterialNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
