package cli

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/alexanderramin/sitemap/internal/i18n"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/charmbracelet/lipgloss"
)

// deviceGlyphs are the single-cell markers drawn for each device type.
var deviceGlyphs = map[domain.DeviceType]rune{
	domain.DeviceCCTV:          'C',
	domain.DeviceDomeCamera:    'D',
	domain.DevicePTZCamera:     'Z',
	domain.DeviceBulletCamera:  'B',
	domain.DeviceNVR:           'N',
	domain.DeviceRouter:        'R',
	domain.DeviceSwitch:        'S',
	domain.DeviceAccessPoint:   'W',
	domain.DevicePatchPanel:    'P',
	domain.DeviceUPS:           'U',
	domain.DeviceMotionSensor:  'M',
	domain.DeviceSmokeDetector: 'F',
	domain.DeviceDoorSensor:    'O',
	domain.DeviceCardReader:    'A',
	domain.DeviceKeypad:        'K',
	domain.DeviceElectricLock:  'L',
	domain.DeviceIntercom:      'I',
	domain.DeviceRack:          '#',
}

func deviceGlyph(t domain.DeviceType) rune {
	if g, ok := deviceGlyphs[t]; ok {
		return g
	}
	return '?'
}

// cable vertex markers by status; segments use cableSegment.
var cableVertex = map[domain.InstallStatus]rune{
	domain.StatusUnset:         '•',
	domain.StatusPending:       '○',
	domain.StatusInstalled:     '●',
	domain.StatusCannotInstall: '✖',
}

const cableSegment = '·'

type cell struct {
	ch    rune
	style lipgloss.Style
}

// grid is a character raster of the canvas area. Row 0 is the first canvas
// row of the content area.
type grid struct {
	w, h  int
	top   int
	cells []cell
}

func newGrid(w, h, top int) *grid {
	return &grid{w: w, h: h, top: top, cells: make([]cell, w*h)}
}

// set writes ch at content coordinates (x, y). Points outside are dropped.
func (g *grid) set(x, y int, ch rune, s lipgloss.Style) {
	y -= g.top
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = cell{ch: ch, style: s}
}

func (g *grid) setPoint(p geom.Point, ch rune, s lipgloss.Style) {
	g.set(int(math.Floor(p.X)), int(math.Floor(p.Y)), ch, s)
}

// line rasterises the segment between two cells with Bresenham's algorithm.
func (g *grid) line(a, b geom.Point, ch rune, s lipgloss.Style) {
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for steps := 0; steps <= g.w+g.h*4; steps++ {
		g.set(x0, y0, ch, s)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (g *grid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			c := g.cells[y*g.w+x]
			if c.ch == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.ch)))
		}
	}
	return b.String()
}

// ── view ─────────────────────────────────────────────────────────────────────

func (v *canvasView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim(i18n.T("canvas.loading", nil))
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(i18n.T("canvas.error", map[string]any{"error": v.err.Error()}))
	}

	w, _ := v.size()
	area := v.canvasArea()
	g := newGrid(w, int(area.Height), canvasTop)
	v.drawFrame(g)
	v.drawCables(g)
	v.drawNodes(g)

	return strings.Join([]string{v.renderTabs(), g.String(), v.renderStatus()}, "\n")
}

func (v *canvasView) drawFrame(g *grid) {
	fit := v.in.Viewport().Viewport().Project(v.fitRect())
	x0, y0 := int(math.Round(fit.X)), int(math.Round(fit.Y))
	x1, y1 := int(math.Round(fit.X+fit.Width))-1, int(math.Round(fit.Y+fit.Height))-1
	if x1 <= x0 || y1 <= y0 {
		return
	}
	dim := formatter.StyleDim
	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, '─', dim)
		g.set(x, y1, '─', dim)
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, '│', dim)
		g.set(x1, y, '│', dim)
	}
	g.set(x0, y0, '┌', dim)
	g.set(x1, y0, '┐', dim)
	g.set(x0, y1, '└', dim)
	g.set(x1, y1, '┘', dim)

	if uri := v.floors.Active().ImageURI; uri != "" {
		for i, r := range []rune(" " + path.Base(uri) + " ") {
			if x := x0 + 2 + i; x < x1-1 {
				g.set(x, y0, r, dim)
			}
		}
	}
}

func (v *canvasView) drawCables(g *grid) {
	s := v.in.Store()
	rect := v.imageRect()
	hit, off, dragging := v.in.DragPreview()
	selected := s.SelectedCableID()

	for _, c := range s.Cables() {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
		if c.ID == selected {
			st = st.Reverse(true)
		}

		pts := make([]geom.Point, len(c.Points))
		for i, p := range c.Points {
			if dragging && hit.Kind == scene.HitCablePoint && hit.ID == c.ID && hit.Index == i {
				p = geom.Pt(geom.Clamp01(p.X+off.X), geom.Clamp01(p.Y+off.Y))
			}
			pts[i] = geom.ToScreen(p, rect)
		}
		for i := 1; i < len(pts); i++ {
			g.line(pts[i-1], pts[i], cableSegment, st)
		}
		vertex := cableVertex[c.Status]
		for _, p := range pts {
			g.setPoint(p, vertex, st)
		}
	}
}

func (v *canvasView) drawNodes(g *grid) {
	s := v.in.Store()
	rect := v.imageRect()
	hit, off, dragging := v.in.DragPreview()
	selected := s.SelectedNodeID()

	for _, n := range s.Nodes() {
		p := n.Position()
		if dragging && hit.Kind == scene.HitNode && hit.ID == n.ID {
			p = geom.Pt(geom.Clamp01(p.X+off.X), geom.Clamp01(p.Y+off.Y))
		}
		st := formatter.InstallStyle(n.Status).Bold(true)
		if n.ID == selected {
			st = st.Reverse(true)
		}
		g.setPoint(geom.ToScreen(p, rect), deviceGlyph(n.Type), st)
	}
}

// ── tabs and status line ─────────────────────────────────────────────────────

type tabSpan struct{ start, end int }

func floorTabLabel(i int, name string) string {
	return fmt.Sprintf(" %d %s ", i+1, name)
}

// tabSpans returns the column range of each floor tab on the tab line.
func (v *canvasView) tabSpans() []tabSpan {
	var (
		spans []tabSpan
		x     int
	)
	for i, fl := range v.floors.List() {
		w := lipgloss.Width(floorTabLabel(i, fl.Name))
		spans = append(spans, tabSpan{start: x, end: x + w})
		x += w + 1
	}
	return spans
}

// tabAt returns the floor position under column x, or -1.
func (v *canvasView) tabAt(x int) int {
	for i, sp := range v.tabSpans() {
		if x >= sp.start && x < sp.end {
			return i
		}
	}
	return -1
}

func (v *canvasView) renderTabs() string {
	active := v.floors.ActivePosition()
	tabs := make([]string, 0, v.floors.Len())
	for i, fl := range v.floors.List() {
		label := floorTabLabel(i, fl.Name)
		if i == active {
			tabs = append(tabs, formatter.StyleHeader.Reverse(true).Render(label))
			continue
		}
		tabs = append(tabs, formatter.Dim(label))
	}
	return strings.Join(tabs, " ")
}

func (v *canvasView) renderStatus() string {
	s := v.in.Store()
	var parts []string

	switch s.Mode() {
	case domain.ModePlaceDevice:
		parts = append(parts, formatter.StyleYellow.Render(
			i18n.T("mode.place-device", map[string]any{"device": i18n.DeviceLabel(s.DeviceToPlace())})))
	case domain.ModeDrawCable:
		points := 0
		if c, ok := s.DrawingCable(); ok {
			points = len(c.Points)
		}
		parts = append(parts, formatter.StyleYellow.Render(
			i18n.T("mode.draw-cable", map[string]any{"points": points})))
		if c := s.PreferredColor(); c != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("━━"))
		} else {
			parts = append(parts, formatter.Dim(i18n.T("cable.auto_color", nil)))
		}
	default:
		parts = append(parts, formatter.Dim(i18n.T("mode.select", nil)))
	}

	if n, ok := s.Node(s.SelectedNodeID()); ok {
		desc := fmt.Sprintf("%s %s", i18n.DeviceLabel(n.Type), formatter.TruncID(n.ID))
		if rack, ok := s.RackOf(n.ID); ok {
			desc += " " + i18n.T("rack.member_of", map[string]any{"rack": formatter.TruncID(rack.ID)})
		}
		if n.Type.IsRack() {
			desc += " " + i18n.T("rack.mounted_count", map[string]any{"count": len(s.DevicesInRack(n.ID))})
		}
		parts = append(parts, formatter.StyleBold.Render(desc), formatter.InstallIndicator(n.Status))
	} else if c, ok := s.Cable(s.SelectedCableID()); ok {
		parts = append(parts,
			formatter.StyleBold.Render(i18n.T("cable.summary", map[string]any{"id": formatter.TruncID(c.ID), "points": len(c.Points)})),
			formatter.InstallIndicator(c.Status))
	}

	if nodes := len(s.Nodes()); nodes > 0 {
		installed := s.StatusCounts()[domain.StatusInstalled]
		parts = append(parts, formatter.Dim(i18n.T("scene.installed_count", map[string]any{"installed": installed, "total": nodes})))
	}
	parts = append(parts, formatter.Dim(fmt.Sprintf("%.0f%%", v.in.Viewport().Viewport().Scale*100)))
	if v.Dirty() {
		parts = append(parts, formatter.StyleYellow.Render(i18n.T("scene.dirty", nil)))
	}
	if v.flash != "" {
		parts = append(parts, v.flash)
	}
	return " " + strings.Join(parts, formatter.Dim("  ·  "))
}
