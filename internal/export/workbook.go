package export

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/i18n"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Summary"
	SheetDevices   = "Devices"
	SheetCables    = "Cables"
	SheetMaterials = "Materials"
)

var (
	devicesHeader   = []any{"Floor", "Device ID", "Type", "Label", "X", "Y", "Rotation", "Scale", "Rack", "Status", "Photo", "Note"}
	cablesHeader    = []any{"Floor", "Cable ID", "Color", "Points", "Length", "Status", "Photo", "Note"}
	materialsHeader = []any{"Floor", "Kind", "Item ID", "Item", "Material", "Quantity"}
	summaryHeader   = []any{"Floor", "Devices", "Cables", "Unset", "Pending", "Installed", "Cannot install"}
)

// WriteWorkbook writes the installer workbook: a summary sheet, one row per
// device and per cable, and the materials recorded as evidence.
func WriteWorkbook(w io.Writer, p *domain.Project, floors []*domain.Floor) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	for _, name := range []string{SheetDevices, SheetCables, SheetMaterials} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating %s sheet: %w", name, err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D5C4A1"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	sw := sheetWriter{f: f, header: headerStyle}
	sw.summary(p, floors)
	sw.devices(floors)
	sw.cables(floors)
	sw.materials(floors)
	if sw.err != nil {
		return sw.err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error so sheet builders read top to bottom.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (s *sheetWriter) row(sheet string, row int, values []any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(sheet, cell, &values); err != nil {
		s.err = fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
}

// table writes a styled, frozen, filterable header at headerRow.
func (s *sheetWriter) table(sheet string, headerRow int, header []any, rows [][]any) {
	s.row(sheet, headerRow, header)
	for i, r := range rows {
		s.row(sheet, headerRow+1+i, r)
	}
	if s.err != nil {
		return
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := s.f.SetRowStyle(sheet, headerRow, headerRow, s.header); err != nil {
		s.err = fmt.Errorf("styling %s header: %w", sheet, err)
		return
	}
	if err := s.f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		s.err = err
		return
	}
	if err := s.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		s.err = fmt.Errorf("freezing %s header: %w", sheet, err)
		return
	}
	if len(rows) > 0 {
		ref := fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(rows))
		if err := s.f.AutoFilter(sheet, ref, nil); err != nil {
			s.err = fmt.Errorf("filtering %s: %w", sheet, err)
		}
	}
}

func (s *sheetWriter) summary(p *domain.Project, floors []*domain.Floor) {
	s.row(SheetSummary, 1, []any{"Project", p.Name})
	s.row(SheetSummary, 2, []any{"ID", p.DisplayID()})
	s.row(SheetSummary, 3, []any{"Site", p.Site})

	var rows [][]any
	for _, fs := range Summarize(floors) {
		rows = append(rows, []any{
			fs.Floor, fs.Devices, fs.Cables,
			fs.ByStatus[domain.StatusUnset],
			fs.ByStatus[domain.StatusPending],
			fs.ByStatus[domain.StatusInstalled],
			fs.ByStatus[domain.StatusCannotInstall],
		})
	}
	s.table(SheetSummary, 5, summaryHeader, rows)
}

func (s *sheetWriter) devices(floors []*domain.Floor) {
	var rows [][]any
	for _, f := range floors {
		for _, n := range f.Scene.Nodes {
			photo, note := evidenceText(n.Evidence)
			rows = append(rows, []any{
				f.Name, n.ID, string(n.Type), i18n.DeviceLabel(n.Type),
				n.X, n.Y, n.Rotation, n.Scale, n.ParentRackID,
				i18n.StatusLabel(n.Status), photo, note,
			})
		}
	}
	s.table(SheetDevices, 1, devicesHeader, rows)
}

func (s *sheetWriter) cables(floors []*domain.Floor) {
	var rows [][]any
	for _, f := range floors {
		for _, c := range f.Scene.Cables {
			photo, note := evidenceText(c.Evidence)
			rows = append(rows, []any{
				f.Name, c.ID, c.Color, len(c.Points), roundTo(CableLength(c, f), 3),
				i18n.StatusLabel(c.Status), photo, note,
			})
		}
	}
	s.table(SheetCables, 1, cablesHeader, rows)
}

func (s *sheetWriter) materials(floors []*domain.Floor) {
	var rows [][]any
	for _, m := range Materials(floors) {
		rows = append(rows, []any{m.Floor, m.Kind, m.ItemID, m.Label, m.Material, m.Quantity})
	}
	s.table(SheetMaterials, 1, materialsHeader, rows)
}

func evidenceText(ev *domain.Evidence) (photo, note string) {
	if ev == nil {
		return "", ""
	}
	return ev.PhotoURI, strings.TrimSpace(ev.Note)
}

func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
