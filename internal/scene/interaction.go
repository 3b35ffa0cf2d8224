package scene

import (
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
)

// DefaultHitRadius is how close, in screen pixels, a tap must land to hit a
// node or a cable point.
const DefaultHitRadius = 1.5

// HitKind classifies what a screen point landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitNode
	HitCablePoint
	HitCable
)

// Hit is the result of hit-testing a screen point.
type Hit struct {
	Kind  HitKind
	ID    string
	Index int // point index for HitCablePoint
}

type dragKind int

const (
	dragPan dragKind = iota
	dragNode
	dragCablePoint
)

type dragState struct {
	kind  dragKind
	hit   Hit
	rect  geom.Rect
	start geom.Point
	last  geom.Point
}

// Interaction interprets pointer gestures according to the store's mode:
// select, place-device or draw-cable. Pan and pinch go to the viewport;
// taps and drags on content become store mutations.
//
// Drags on nodes and cable points are previewed while moving and committed
// once at EndDrag, so a whole drag is a single undo step. A cancelled drag
// commits nothing.
type Interaction struct {
	store     *Store
	viewport  *geom.ViewportController
	hitRadius float64
	drag      *dragState
}

// NewInteraction binds gesture handling to a store and a viewport.
func NewInteraction(store *Store, vp *geom.ViewportController, hitRadius float64) *Interaction {
	if !(hitRadius > 0) {
		hitRadius = DefaultHitRadius
	}
	return &Interaction{store: store, viewport: vp, hitRadius: hitRadius}
}

// Store returns the store this interaction drives.
func (in *Interaction) Store() *Store { return in.store }

// Viewport returns the viewport controller.
func (in *Interaction) Viewport() *geom.ViewportController { return in.viewport }

// PickDevice arms placement of one device of type t (select → place-device).
func (in *Interaction) PickDevice(t domain.DeviceType) bool {
	if !t.Valid() {
		return false
	}
	in.store.SetMode(domain.ModePlaceDevice)
	in.store.SetDeviceToPlace(t)
	in.store.ClearSelection()
	return true
}

// ActivateCableTool enters draw-cable mode.
func (in *Interaction) ActivateCableTool() {
	in.store.SetMode(domain.ModeDrawCable)
	in.store.ClearSelection()
}

// Finish ends the cable in progress and returns to select.
func (in *Interaction) Finish() bool {
	return in.store.FinishCable()
}

// Cancel backs out of the current gesture or tool: an active drag is
// dropped, placement is disarmed, and cable drawing is finished.
func (in *Interaction) Cancel() {
	if in.drag != nil {
		in.CancelDrag()
		return
	}
	switch in.store.Mode() {
	case domain.ModePlaceDevice:
		in.store.SetMode(domain.ModeSelect)
	case domain.ModeDrawCable:
		in.store.FinishCable()
	default:
		in.store.ClearSelection()
	}
}

// Tap handles a single tap at screen point p over the rendered image rect.
func (in *Interaction) Tap(p geom.Point, rect geom.Rect) Hit {
	u := geom.ToUnit(p, rect)
	switch in.store.Mode() {
	case domain.ModePlaceDevice:
		if id, ok := in.store.AddNodeAt(u.X, u.Y); ok {
			in.store.Select(id)
			return Hit{Kind: HitNode, ID: id}
		}
		return Hit{}
	case domain.ModeDrawCable:
		if _, drawing := in.store.DrawingCable(); drawing {
			in.store.AddCablePoint(u.X, u.Y)
		} else {
			in.store.StartCable(u.X, u.Y)
		}
		return Hit{}
	default:
		return in.selectAt(p, rect)
	}
}

// DoubleTap finishes the cable in draw-cable mode. In select mode it selects
// like Tap and returns the hit so the caller can open an editor for it.
func (in *Interaction) DoubleTap(p geom.Point, rect geom.Rect) Hit {
	if in.store.Mode() == domain.ModeDrawCable {
		in.store.FinishCable()
		return Hit{}
	}
	return in.Tap(p, rect)
}

func (in *Interaction) selectAt(p geom.Point, rect geom.Rect) Hit {
	h := in.HitTest(p, rect)
	switch h.Kind {
	case HitNode:
		in.store.Select(h.ID)
	case HitCable, HitCablePoint:
		in.store.SelectCable(h.ID)
	default:
		in.store.ClearSelection()
	}
	return h
}

// HitTest finds the topmost node within the hit radius of p, then the
// nearest cable point, then any cable segment.
func (in *Interaction) HitTest(p geom.Point, rect geom.Rect) Hit {
	nodes := in.store.nodes
	for i := len(nodes) - 1; i >= 0; i-- {
		if geom.Distance(p, geom.ToScreen(nodes[i].Position(), rect)) <= in.hitRadius {
			return Hit{Kind: HitNode, ID: nodes[i].ID}
		}
	}

	best, bestDist := Hit{}, in.hitRadius
	for _, c := range in.store.cables {
		for j, pt := range c.Points {
			if d := geom.Distance(p, geom.ToScreen(pt, rect)); d <= bestDist {
				best, bestDist = Hit{Kind: HitCablePoint, ID: c.ID, Index: j}, d
			}
		}
	}
	if best.Kind != HitNone {
		return best
	}

	for i := len(in.store.cables) - 1; i >= 0; i-- {
		c := in.store.cables[i]
		for j := 1; j < len(c.Points); j++ {
			a := geom.ToScreen(c.Points[j-1], rect)
			b := geom.ToScreen(c.Points[j], rect)
			if geom.SegmentDistance(p, a, b) <= in.hitRadius {
				return Hit{Kind: HitCable, ID: c.ID}
			}
		}
	}
	return Hit{}
}

// ── drag ─────────────────────────────────────────────────────────────────────

// BeginDrag starts a drag at p. In select mode a drag that starts on a node
// or cable point moves it; anything else pans the viewport.
func (in *Interaction) BeginDrag(p geom.Point, rect geom.Rect) {
	d := &dragState{kind: dragPan, rect: rect, start: p, last: p}
	if in.store.Mode() == domain.ModeSelect {
		h := in.HitTest(p, rect)
		switch h.Kind {
		case HitNode:
			d.kind, d.hit = dragNode, h
			in.store.Select(h.ID)
		case HitCablePoint:
			d.kind, d.hit = dragCablePoint, h
			in.store.SelectCable(h.ID)
		}
	}
	in.drag = d
}

// DragTo reports intermediate pointer positions. Pans apply immediately;
// content drags only update the preview.
func (in *Interaction) DragTo(p geom.Point) {
	d := in.drag
	if d == nil {
		return
	}
	if d.kind == dragPan {
		in.viewport.Pan(p.X-d.last.X, p.Y-d.last.Y)
	}
	d.last = p
}

// EndDrag commits a content drag as one mutation.
func (in *Interaction) EndDrag(p geom.Point) bool {
	d := in.drag
	if d == nil {
		return false
	}
	in.DragTo(p)
	in.drag = nil
	delta := geom.ScaleDelta(p.Sub(d.start), d.rect)
	switch d.kind {
	case dragNode:
		return in.store.MoveNode(d.hit.ID, delta.X, delta.Y)
	case dragCablePoint:
		return in.store.MoveCablePoint(d.hit.ID, d.hit.Index, delta.X, delta.Y)
	}
	return false
}

// CancelDrag abandons a drag without committing content changes.
func (in *Interaction) CancelDrag() {
	in.drag = nil
}

// Dragging reports whether a drag is in progress.
func (in *Interaction) Dragging() bool { return in.drag != nil }

// DragPreview returns the hit being dragged and its pending unit-square
// offset, for drawing content at its in-flight position.
func (in *Interaction) DragPreview() (Hit, geom.Point, bool) {
	d := in.drag
	if d == nil || d.kind == dragPan {
		return Hit{}, geom.Point{}, false
	}
	return d.hit, geom.ScaleDelta(d.last.Sub(d.start), d.rect), true
}

// ── viewport gestures ────────────────────────────────────────────────────────

// Pan moves the viewport by a screen delta.
func (in *Interaction) Pan(dx, dy float64) { in.viewport.Pan(dx, dy) }

// Pinch zooms by factor around a screen point.
func (in *Interaction) Pinch(factor float64, focal geom.Point) {
	in.viewport.ZoomAt(factor, focal)
}
