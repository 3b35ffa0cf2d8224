package cli

import (
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/i18n"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_PlaceDeviceWithKeyAndClick(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('6')
	s := d.Store()
	require.Equal(t, domain.ModePlaceDevice, s.Mode())
	assert.Equal(t, domain.DeviceRouter, s.DeviceToPlace())

	d.Click(60, 19)

	nodes := s.Nodes()
	require.Len(t, nodes, 1)
	want := unitAt(60, 19)
	assert.InDelta(t, want.X, nodes[0].X, 1e-9)
	assert.InDelta(t, want.Y, nodes[0].Y, 1e-9)
	assert.Equal(t, domain.ModeSelect, s.Mode())
	assert.Equal(t, nodes[0].ID, s.SelectedNodeID())

	x, y := screenAt(nodes[0].X, nodes[0].Y)
	assert.Equal(t, 'R', d.CellAt(x, y))
	assert.Contains(t, d.View(), i18n.T("scene.dirty", nil))
}

func TestCanvas_DragMovesNodeAsOneStep(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(60, 19)
	s := d.Store()
	startX := s.Nodes()[0].X
	undo, _ := s.HistoryLen()

	d.Drag(60, 19, 72, 19)

	n := s.Nodes()[0]
	assert.InDelta(t, startX+12.0/119, n.X, 1e-9)
	after, _ := s.HistoryLen()
	assert.Equal(t, undo+1, after)
	x, y := screenAt(n.X, n.Y)
	assert.Equal(t, 'C', d.CellAt(x, y))

	d.PressKey('u')
	assert.InDelta(t, startX, s.Nodes()[0].X, 1e-9)
	d.PressKey('r')
	assert.InDelta(t, n.X, s.Nodes()[0].X, 1e-9)
}

func TestCanvas_DragOnEmptyAreaPans(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	v := d.OpenFirstProject()

	d.Drag(10, 10, 20, 13)

	vp := v.in.Viewport().Viewport()
	assert.InDelta(t, 10, vp.TranslateX, 1e-9)
	assert.InDelta(t, 3, vp.TranslateY, 1e-9)
	assert.False(t, v.Dirty(), "panning is not an edit")

	d.PressKey('0')
	assert.Zero(t, v.in.Viewport().Viewport().TranslateX)
}

func TestCanvas_WheelZoomKeepsFocalPoint(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	v := d.OpenFirstProject()

	before := unitAt(30, 10)
	d.Wheel(30, 10, true)
	assert.InDelta(t, zoomStep, v.in.Viewport().Viewport().Scale, 1e-9)

	// The cell under the cursor still resolves to the same unit position.
	p := v.imageRect()
	got := cellPoint(30, 10-headerHeight)
	assert.InDelta(t, before.X, (got.X-p.X)/p.Width, 1e-9)
	assert.InDelta(t, before.Y, (got.Y-p.Y)/p.Height, 1e-9)

	d.Wheel(30, 10, false)
	assert.InDelta(t, 1, v.in.Viewport().Viewport().Scale, 1e-9)
}

func TestCanvas_DrawCableFinishedByDoubleClick(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('c')
	s := d.Store()
	require.Equal(t, domain.ModeDrawCable, s.Mode())

	d.Click(10, 5)
	d.Click(50, 5)
	d.Click(50, 25)
	d.Click(50, 25)

	cables := s.Cables()
	require.Len(t, cables, 1)
	assert.Len(t, cables[0].Points, 3)
	assert.Equal(t, domain.ModeSelect, s.Mode())
	_, drawing := s.DrawingCable()
	assert.False(t, drawing)
}

func TestCanvas_DrawCableFinishedByEnter(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('c')
	d.Click(10, 5)
	d.Click(50, 5)
	assert.Contains(t, d.View(), i18n.T("mode.draw-cable", map[string]any{"points": 2}))

	d.PressEnter()
	s := d.Store()
	require.Len(t, s.Cables(), 1)
	assert.Equal(t, domain.ModeSelect, s.Mode())
	assert.Equal(t, ViewCanvas, d.ActiveViewID(), "enter finishes the cable rather than opening the status form")
}

func TestCanvas_EscCancelsBeforeLeaving(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.PressEsc()
	assert.Equal(t, domain.ModeSelect, d.Store().Mode())
	assert.Equal(t, ViewCanvas, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewProjectList}, d.ViewStackIDs())
	assert.Empty(t, d.State().ActiveProjectID)
}

func TestCanvas_UnsavedGuardAndSave(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(60, 19)

	d.PressKey('q')
	assert.Equal(t, ViewCanvas, d.ActiveViewID())
	assert.Contains(t, d.View(), "Unsaved changes")

	d.PressKey('s')
	assert.Contains(t, d.View(), i18n.T("scene.saved", map[string]any{"floors": 1}))

	d.PressKey('q')
	assert.Equal(t, []ViewID{ViewProjectList}, d.ViewStackIDs())

	floors := loadFloors(t, app, p)
	require.Len(t, floors, 1)
	assert.Len(t, floors[0].Scene.Nodes, 1)
}

func TestCanvas_DiscardLeavesStoredFloorsUntouched(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(60, 19)
	d.PressKey('Q')

	assert.Equal(t, []ViewID{ViewProjectList}, d.ViewStackIDs())
	for _, fl := range loadFloors(t, app, p) {
		assert.Empty(t, fl.Scene.Nodes)
	}
}

func TestCanvas_DeleteAndUndo(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('9')
	d.Click(40, 10)
	s := d.Store()
	require.Len(t, s.Nodes(), 1)

	d.PressKey('x')
	assert.Empty(t, s.Nodes())

	d.PressKey('u')
	assert.Len(t, s.Nodes(), 1)
}

func TestCanvas_ClickSelectsAndClears(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(40, 10)
	s := d.Store()
	id := s.Nodes()[0].ID

	d.Click(100, 30)
	assert.Nil(t, s.Selection())

	d.Click(40, 10)
	assert.Equal(t, id, s.SelectedNodeID())
}

func TestCanvas_DoubleClickOpensStatusForm(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(40, 10)
	d.Click(40, 10)
	d.Click(40, 10)

	assert.Equal(t, ViewForm, d.ActiveViewID())
	d.PressEsc()
	assert.Equal(t, ViewCanvas, d.ActiveViewID())
}

func TestCanvas_StatusNeedsSelection(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('t')
	assert.Equal(t, ViewCanvas, d.ActiveViewID())
	assert.Contains(t, d.View(), i18n.T("scene.need_selection", nil))
}

func TestCanvas_RotateAndScaleSelection(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(40, 10)
	d.PressKey('o')
	d.PressKey('o')
	d.PressKey('>')

	n := d.Store().Nodes()[0]
	assert.InDelta(t, 30, n.Rotation, 1e-9)
	assert.InDelta(t, scaleStep, n.Scale, 1e-9)
}

func TestCanvas_FloorTabsAndKeys(t *testing.T) {
	app := testApp(t)
	seedProject(t, app,
		&domain.Floor{ID: "f1", Name: "Ground"},
		&domain.Floor{ID: "f2", Name: "Roof", OrderIndex: 1},
	)
	d := NewTestDriver(t, app)
	v := d.OpenFirstProject()

	d.PressKey(']')
	assert.Equal(t, "f2", v.floors.ActiveID())
	d.PressKey(']')
	assert.Equal(t, "f2", v.floors.ActiveID(), "no floor past the last")

	// " 1 Ground " occupies columns 0-9 of the tab row.
	d.Click(3, headerHeight)
	assert.Equal(t, "f1", v.floors.ActiveID())
	assert.False(t, v.Dirty(), "switching floors is not an edit")

	d.PressKey('n')
	assert.Equal(t, 3, v.floors.Len())
	assert.Equal(t, "Floor 3", v.floors.Active().Name)
	assert.True(t, v.Dirty())

	d.PressKey('{')
	assert.Equal(t, 1, v.floors.ActivePosition())
}

func TestCanvas_FloorContentIsolated(t *testing.T) {
	app := testApp(t)
	seedProject(t, app,
		&domain.Floor{ID: "f1", Name: "Ground"},
		&domain.Floor{ID: "f2", Name: "Roof", OrderIndex: 1},
	)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('1')
	d.Click(40, 10)
	d.PressKey(']')
	assert.Empty(t, d.Store().Nodes())
	assert.False(t, d.Store().CanUndo())

	d.PressKey('[')
	assert.Len(t, d.Store().Nodes(), 1)
}

func TestCanvas_RenameFormCancels(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('R')
	assert.Equal(t, ViewForm, d.ActiveViewID())
	d.PressEsc()
	assert.Equal(t, ViewCanvas, d.ActiveViewID())
	assert.False(t, d.Canvas().Dirty())
}

func TestCanvas_InventoryShowsLiveFloor(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	d.PressKey('6')
	d.Click(40, 10)
	d.PressKey('i')

	assert.Equal(t, ViewInventory, d.ActiveViewID())
	assert.Contains(t, d.View(), "Router")

	d.PressEsc()
	assert.Equal(t, ViewCanvas, d.ActiveViewID())
}

func TestCanvas_ColorKeyCyclesBackToAuto(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()
	s := d.Store()

	d.PressKey('w')
	assert.Equal(t, scene.CablePalette[0], s.PreferredColor())
	for range len(scene.CablePalette) - 1 {
		d.PressKey('w')
	}
	assert.Equal(t, scene.CablePalette[len(scene.CablePalette)-1], s.PreferredColor())

	d.PressKey('w')
	assert.Empty(t, s.PreferredColor())
	d.PressKey('c')
	assert.Contains(t, d.View(), i18n.T("cable.auto_color", nil))
}

func TestCanvas_StatusLineUsesCatalog(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	s := d.Store()
	rack, _ := s.AddNodeAt(0.2, 0.2, domain.DeviceRack)
	sw, _ := s.AddNodeAt(0.8, 0.8, domain.DeviceSwitch)
	require.True(t, s.AddDeviceToRack(sw, rack))

	s.Select(rack)
	assert.Contains(t, d.View(), i18n.T("rack.mounted_count", map[string]any{"count": 1}))
	assert.Contains(t, d.View(), i18n.T("scene.installed_count", map[string]any{"installed": 0, "total": 2}))
}
