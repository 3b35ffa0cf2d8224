package scene

import (
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRect = geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}

func newTestInteraction() *Interaction {
	return NewInteraction(newTestStore(), geom.NewViewportController(), 3)
}

func TestInteraction_PlaceOneDevicePerPick(t *testing.T) {
	in := newTestInteraction()
	s := in.Store()

	require.True(t, in.PickDevice(domain.DeviceBulletCamera))
	assert.Equal(t, domain.ModePlaceDevice, s.Mode())

	h := in.Tap(geom.Pt(60, 35), testRect)
	assert.Equal(t, HitNode, h.Kind)
	assert.Equal(t, domain.ModeSelect, s.Mode())
	assert.Equal(t, h.ID, s.SelectedNodeID())

	nodes := s.Nodes()
	require.Len(t, nodes, 1)
	assert.InDelta(t, 0.5, nodes[0].X, 1e-9)
	assert.InDelta(t, 0.25, nodes[0].Y, 1e-9)

	// next tap is a select-mode tap on empty canvas
	in.Tap(geom.Pt(100, 100), testRect)
	assert.Len(t, s.Nodes(), 1)
	assert.Nil(t, s.Selection())
}

func TestInteraction_TapOutsideImageIsClamped(t *testing.T) {
	in := newTestInteraction()
	in.PickDevice(domain.DeviceUPS)
	in.Tap(geom.Pt(-50, 500), testRect)
	n := in.Store().Nodes()[0]
	assert.Equal(t, geom.Pt(0, 1), n.Position())
}

func TestInteraction_DrawCableWithTapsAndDoubleTap(t *testing.T) {
	in := newTestInteraction()
	s := in.Store()
	in.ActivateCableTool()
	assert.Equal(t, domain.ModeDrawCable, s.Mode())

	in.Tap(geom.Pt(10, 10), testRect)
	in.Tap(geom.Pt(60, 10), testRect)
	in.Tap(geom.Pt(60, 60), testRect)
	c, drawing := s.DrawingCable()
	require.True(t, drawing)
	assert.Len(t, c.Points, 3)

	in.DoubleTap(geom.Pt(60, 60), testRect)
	assert.Equal(t, domain.ModeSelect, s.Mode())
	cables := s.Cables()
	require.Len(t, cables, 1)
	assert.True(t, cables[0].Finished)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(0.5, 0), geom.Pt(0.5, 0.5)}, cables[0].Points)

	// each tap was its own history entry
	undo, _ := s.HistoryLen()
	assert.Equal(t, 4, undo)
}

func TestInteraction_CancelDrawingKeepsValidCable(t *testing.T) {
	in := newTestInteraction()
	in.ActivateCableTool()
	in.Tap(geom.Pt(10, 10), testRect)
	in.Cancel()
	assert.Empty(t, in.Store().Cables(), "single point cable is discarded")
	assert.Equal(t, domain.ModeSelect, in.Store().Mode())
}

func TestInteraction_CancelPlacementDisarms(t *testing.T) {
	in := newTestInteraction()
	in.PickDevice(domain.DeviceKeypad)
	in.Cancel()
	assert.Equal(t, domain.ModeSelect, in.Store().Mode())
	assert.Empty(t, in.Store().DeviceToPlace())
}

func TestInteraction_TapSelectsNodeThenCable(t *testing.T) {
	in := newTestInteraction()
	s := in.Store()
	nodeID, _ := s.AddNodeAt(0.5, 0.5, domain.DeviceSwitch)
	s.StartCable(0, 0.9)
	s.AddCablePoint(1, 0.9)
	s.FinishCable()
	cableID := s.Cables()[0].ID

	h := in.Tap(geom.Pt(61, 59), testRect)
	assert.Equal(t, HitNode, h.Kind)
	assert.Equal(t, nodeID, s.SelectedNodeID())

	h = in.Tap(geom.Pt(40, 101), testRect) // on the segment, between points
	assert.Equal(t, HitCable, h.Kind)
	assert.Equal(t, cableID, s.SelectedCableID())
	assert.Empty(t, s.SelectedNodeID())

	h = in.Tap(geom.Pt(110, 100), testRect) // on the end point
	assert.Equal(t, HitCablePoint, h.Kind)
	assert.Equal(t, 1, h.Index)

	in.Tap(geom.Pt(30, 30), testRect)
	assert.Nil(t, s.Selection())
}

func TestInteraction_NodeDragCommitsOnceAtEnd(t *testing.T) {
	in := newTestInteraction()
	s := in.Store()
	id, _ := s.AddNodeAt(0.5, 0.5, domain.DeviceRouter)
	undoBefore, _ := s.HistoryLen()

	in.BeginDrag(geom.Pt(60, 60), testRect)
	for x := 61.0; x <= 80; x++ {
		in.DragTo(geom.Pt(x, 60))
	}
	hit, off, ok := in.DragPreview()
	require.True(t, ok)
	assert.Equal(t, id, hit.ID)
	assert.InDelta(t, 0.2, off.X, 1e-9)

	n, _ := s.Node(id)
	assert.Equal(t, 0.5, n.X, "intermediate moves are preview only")

	require.True(t, in.EndDrag(geom.Pt(80, 70)))
	n, _ = s.Node(id)
	assert.InDelta(t, 0.7, n.X, 1e-9)
	assert.InDelta(t, 0.6, n.Y, 1e-9)

	undoAfter, _ := s.HistoryLen()
	assert.Equal(t, undoBefore+1, undoAfter, "whole drag is one undo step")
	assert.Equal(t, geom.Identity(), in.Viewport().Viewport(), "content drag does not pan")
}

func TestInteraction_CancelledDragCommitsNothing(t *testing.T) {
	in := newTestInteraction()
	s := in.Store()
	id, _ := s.AddNodeAt(0.5, 0.5, domain.DeviceRouter)
	rev := s.Revision()

	in.BeginDrag(geom.Pt(60, 60), testRect)
	in.DragTo(geom.Pt(90, 90))
	in.Cancel()
	assert.False(t, in.Dragging())
	assert.False(t, in.EndDrag(geom.Pt(90, 90)))

	n, _ := s.Node(id)
	assert.Equal(t, geom.Pt(0.5, 0.5), n.Position())
	assert.Equal(t, rev, s.Revision())
}

func TestInteraction_CablePointDrag(t *testing.T) {
	in := newTestInteraction()
	s := in.Store()
	s.StartCable(0, 0)
	s.AddCablePoint(0.5, 0.5)
	s.FinishCable()
	id := s.Cables()[0].ID

	in.BeginDrag(geom.Pt(60, 60), testRect)
	in.DragTo(geom.Pt(70, 65))
	require.True(t, in.EndDrag(geom.Pt(70, 70)))

	c, _ := s.Cable(id)
	assert.InDelta(t, 0.6, c.Points[1].X, 1e-9)
	assert.InDelta(t, 0.6, c.Points[1].Y, 1e-9)
	assert.Equal(t, id, s.SelectedCableID())
}

func TestInteraction_DragOnEmptyCanvasPans(t *testing.T) {
	in := newTestInteraction()
	in.BeginDrag(geom.Pt(20, 20), testRect)
	in.DragTo(geom.Pt(25, 30))
	in.EndDrag(geom.Pt(30, 40))
	vp := in.Viewport().Viewport()
	assert.Equal(t, 10.0, vp.TranslateX)
	assert.Equal(t, 20.0, vp.TranslateY)
	assert.False(t, in.Store().CanUndo(), "panning is not undoable")
}

func TestInteraction_PinchZoomIsClamped(t *testing.T) {
	in := newTestInteraction()
	for i := 0; i < 40; i++ {
		in.Pinch(0.5, geom.Pt(0, 0))
	}
	assert.Equal(t, geom.MinScale, in.Viewport().Viewport().Scale)
	for i := 0; i < 40; i++ {
		in.Pinch(2, geom.Pt(0, 0))
	}
	assert.Equal(t, geom.MaxScale, in.Viewport().Viewport().Scale)
}

func TestInteraction_TapRespectsViewport(t *testing.T) {
	in := newTestInteraction()
	base := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	in.Pinch(2, geom.Pt(0, 0))
	in.Pan(-50, -50)
	rect := in.Viewport().Viewport().Project(base)

	in.PickDevice(domain.DeviceRouter)
	in.Tap(geom.Pt(50, 50), rect)
	n := in.Store().Nodes()[0]
	assert.InDelta(t, 0.5, n.X, 1e-9)
	assert.InDelta(t, 0.5, n.Y, 1e-9)
}
