package cli

import (
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/alexanderramin/sitemap/internal/teatest"
)

// TestDriver wraps teatest.Driver with inspection methods for the sitemap
// TUI: the view stack, shared state and the open canvas.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the project list synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── Canvas geometry ──────────────────────────────────────────────────────────

// With a 120x40 terminal and no floor image, the canvas spans content rows
// 1-34 and unit positions map onto cell centres of this rect.
var testImageRect = geom.Rect{X: 0.5, Y: 1.5, Width: 119, Height: 33}

// screenAt returns the terminal cell showing unit position (ux, uy) at the
// identity viewport.
func screenAt(ux, uy float64) (int, int) {
	p := geom.ToScreen(geom.Pt(ux, uy), testImageRect)
	return int(p.X), int(p.Y) + headerHeight
}

// unitAt returns the unit position a click on terminal cell (x, y) resolves
// to at the identity viewport.
func unitAt(x, y int) geom.Point {
	return geom.ToUnit(cellPoint(x, y-headerHeight), testImageRect)
}

// ── High-level helpers ───────────────────────────────────────────────────────

// OpenFirstProject presses Enter on the project list and waits for the
// canvas to load.
func (d *TestDriver) OpenFirstProject() *canvasView {
	d.T.Helper()
	d.PressEnter()
	v := d.Canvas()
	if v == nil || v.in == nil {
		d.T.Fatalf("canvas did not open; stack = %v", d.ViewStackIDs())
	}
	return v
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state pointer.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Canvas returns the topmost canvas on the stack, or nil.
func (d *TestDriver) Canvas() *canvasView {
	m := d.appModel()
	for i := len(m.viewStack) - 1; i >= 0; i-- {
		if v, ok := m.viewStack[i].(*canvasView); ok {
			return v
		}
	}
	return nil
}

// Store returns the open canvas's scene store.
func (d *TestDriver) Store() *scene.Store {
	d.T.Helper()
	v := d.Canvas()
	if v == nil || v.in == nil {
		d.T.Fatal("no canvas open")
	}
	return v.in.Store()
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Lines returns the rendered screen without styling, one entry per row.
func (d *TestDriver) Lines() []string {
	return strings.Split(ansiRe.ReplaceAllString(d.View(), ""), "\n")
}

// CellAt returns the rune rendered at terminal cell (x, y).
func (d *TestDriver) CellAt(x, y int) rune {
	lines := d.Lines()
	if y < 0 || y >= len(lines) {
		return 0
	}
	row := []rune(lines[y])
	if x < 0 || x >= len(row) {
		return 0
	}
	return row[x]
}
