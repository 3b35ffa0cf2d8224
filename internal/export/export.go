// Package export renders a project's floors for hand-off: an installer
// workbook (xlsx) and a JSON snapshot.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/alexanderramin/sitemap/internal/i18n"
)

// Format names an export encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatJSON:
		return f, nil
	}
	return "", &domain.InvalidValueError{Field: "export format", Value: s}
}

// Write encodes the project in the given format.
func Write(w io.Writer, f Format, p *domain.Project, floors []*domain.Floor) error {
	switch f {
	case FormatXLSX:
		return WriteWorkbook(w, p, floors)
	case FormatJSON:
		return WriteJSON(w, p, floors)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// CableLength returns the cable's length in image pixels when the floor's
// image size is known, otherwise in unit-square lengths.
func CableLength(c domain.Cable, f *domain.Floor) float64 {
	if f.ImageWidth <= 0 || f.ImageHeight <= 0 {
		return geom.PolylineLength(c.Points)
	}
	pts := make([]geom.Point, len(c.Points))
	for i, p := range c.Points {
		pts[i] = geom.Pt(p.X*float64(f.ImageWidth), p.Y*float64(f.ImageHeight))
	}
	return geom.PolylineLength(pts)
}

// FloorSummary tallies one floor's content.
type FloorSummary struct {
	Floor    string
	Devices  int
	Cables   int
	ByStatus map[domain.InstallStatus]int
}

// Summarize counts devices, cables and install statuses per floor.
func Summarize(floors []*domain.Floor) []FloorSummary {
	out := make([]FloorSummary, 0, len(floors))
	for _, f := range floors {
		s := FloorSummary{
			Floor:    f.Name,
			Devices:  len(f.Scene.Nodes),
			Cables:   len(f.Scene.Cables),
			ByStatus: map[domain.InstallStatus]int{},
		}
		for _, n := range f.Scene.Nodes {
			s.ByStatus[n.Status]++
		}
		for _, c := range f.Scene.Cables {
			s.ByStatus[c.Status]++
		}
		out = append(out, s)
	}
	return out
}

// MaterialLine is one consumed material recorded as evidence.
type MaterialLine struct {
	Floor    string
	Kind     string // "device" or "cable"
	ItemID   string
	Label    string
	Material string
	Quantity float64
}

// Materials flattens every evidence materials map, in floor then item order,
// with material names sorted within an item.
func Materials(floors []*domain.Floor) []MaterialLine {
	var out []MaterialLine
	add := func(floor, kind, id, label string, ev *domain.Evidence) {
		if ev == nil {
			return
		}
		for _, name := range sortedKeys(ev.Materials) {
			out = append(out, MaterialLine{
				Floor: floor, Kind: kind, ItemID: id, Label: label,
				Material: name, Quantity: ev.Materials[name],
			})
		}
	}
	for _, f := range floors {
		for _, n := range f.Scene.Nodes {
			add(f.Name, "device", n.ID, i18n.DeviceLabel(n.Type), n.Evidence)
		}
		for _, c := range f.Scene.Cables {
			add(f.Name, "cable", c.ID, c.Color, c.Evidence)
		}
	}
	return out
}
