// Package scene holds the editable model of a floor plan: device nodes,
// cables, selection and interaction mode, with snapshot undo/redo, the
// gesture translation that drives it, and the multiplexer that swaps floors
// in and out.
//
// Every operation is total. Unknown ids and structurally invalid requests
// are ignored and reported through a false result; nothing here returns an
// error or panics on bad input.
package scene

import (
	"math"
	"slices"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/google/uuid"
)

// Node scale bounds for ScaleNode.
const (
	minNodeScale = 0.25
	maxNodeScale = 4.0
)

// Store is the single mutation surface for a floor's scene. It is not safe
// for concurrent use; the editor drives it from one event loop.
type Store struct {
	nodes         []domain.DeviceNode
	cables        []domain.Cable
	mode          domain.Mode
	selection     *Selection
	deviceToPlace domain.DeviceType

	preferredColor string
	history        *History
	newID          func() string
	revision       uint64
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit bounds undo depth; <= 0 means unbounded.
func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.history = NewHistory(n) }
}

// WithIDGenerator replaces uuid generation, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithPreferredColor makes every new cable use c instead of cycling.
func WithPreferredColor(c string) Option {
	return func(s *Store) { s.SetPreferredColor(c) }
}

// NewStore returns an empty store in select mode.
func NewStore(opts ...Option) *Store {
	s := &Store{
		nodes:   []domain.DeviceNode{},
		cables:  []domain.Cable{},
		mode:    domain.ModeSelect,
		history: NewHistory(DefaultHistoryLimit),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ── read side ────────────────────────────────────────────────────────────────

// Nodes returns a deep copy of all device nodes in draw order.
func (s *Store) Nodes() []domain.DeviceNode {
	return domain.Scene{Nodes: s.nodes}.Clone().Nodes
}

// Cables returns a deep copy of all cables, including one being drawn.
func (s *Store) Cables() []domain.Cable {
	return domain.Scene{Cables: s.cables}.Clone().Cables
}

// Node looks up a node by id.
func (s *Store) Node(id string) (domain.DeviceNode, bool) {
	i := s.nodeIndex(id)
	if i < 0 {
		return domain.DeviceNode{}, false
	}
	return s.nodes[i].Clone(), true
}

// Cable looks up a cable by id.
func (s *Store) Cable(id string) (domain.Cable, bool) {
	i := s.cableIndex(id)
	if i < 0 {
		return domain.Cable{}, false
	}
	return s.cables[i].Clone(), true
}

// Content returns the scene as plain data for persistence.
func (s *Store) Content() domain.Scene {
	return domain.Scene{Nodes: s.nodes, Cables: s.cables}.Clone()
}

func (s *Store) Mode() domain.Mode                { return s.mode }
func (s *Store) DeviceToPlace() domain.DeviceType { return s.deviceToPlace }
func (s *Store) PreferredColor() string           { return s.preferredColor }

// Selection returns the current selection, or nil.
func (s *Store) Selection() *Selection { return s.selection.clone() }

// SelectedNodeID returns the selected node id, or "".
func (s *Store) SelectedNodeID() string {
	if s.selection != nil && s.selection.Kind == domain.SelectNode {
		return s.selection.ID
	}
	return ""
}

// SelectedCableID returns the selected cable id, or "".
func (s *Store) SelectedCableID() string {
	if s.selection != nil && s.selection.Kind == domain.SelectCable {
		return s.selection.ID
	}
	return ""
}

// DrawingCable returns the cable currently being drawn.
func (s *Store) DrawingCable() (domain.Cable, bool) {
	i := s.drawingIndex()
	if i < 0 {
		return domain.Cable{}, false
	}
	return s.cables[i].Clone(), true
}

// Revision increases on every change to nodes, cables, or history position.
// Callers compare revisions to detect unsaved edits.
func (s *Store) Revision() uint64 { return s.revision }

// ── history ──────────────────────────────────────────────────────────────────

func (s *Store) CanUndo() bool { return s.history.CanUndo() }
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// HistoryLen returns the number of undo and redo entries.
func (s *Store) HistoryLen() (undo, redo int) { return s.history.Len() }

// Undo restores the state before the last tracked mutation.
func (s *Store) Undo() bool {
	prev, ok := s.history.Undo(s.snapshot())
	if !ok {
		return false
	}
	s.restore(prev)
	return true
}

// Redo re-applies the last undone mutation.
func (s *Store) Redo() bool {
	next, ok := s.history.Redo(s.snapshot())
	if !ok {
		return false
	}
	s.restore(next)
	return true
}

// Load replaces the scene wholesale, resetting interaction state and history.
func (s *Store) Load(sc domain.Scene) {
	sc = sc.Clone()
	sc.Normalize()
	s.nodes = sc.Nodes
	s.cables = sc.Cables
	s.mode = domain.ModeSelect
	s.selection = nil
	s.deviceToPlace = ""
	s.history.Clear()
	s.revision++
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Nodes:         s.nodes,
		Cables:        s.cables,
		Mode:          s.mode,
		Selection:     s.selection,
		DeviceToPlace: s.deviceToPlace,
	}.Clone()
}

// restore takes ownership of snap; it was popped from the history.
func (s *Store) restore(snap Snapshot) {
	s.nodes = snap.Nodes
	s.cables = snap.Cables
	s.mode = snap.Mode
	s.selection = snap.Selection
	s.deviceToPlace = snap.DeviceToPlace
	s.revision++
}

// track records the pre-mutation state. Every tracked operation calls it
// once, after validating its input and before changing anything.
func (s *Store) track() {
	s.history.Record(s.snapshot())
	s.revision++
}

// ── interaction state (untracked) ────────────────────────────────────────────

// SetMode switches the interaction mode. Leaving draw-cable finishes any
// cable in progress so at most one cable is ever unfinished.
func (s *Store) SetMode(m domain.Mode) {
	switch m {
	case domain.ModeSelect, domain.ModePlaceDevice, domain.ModeDrawCable:
	default:
		return
	}
	if s.mode == m {
		return
	}
	if s.mode == domain.ModeDrawCable && s.drawingIndex() >= 0 {
		s.FinishCable()
	}
	if m != domain.ModePlaceDevice {
		s.deviceToPlace = ""
	}
	s.mode = m
}

// SetDeviceToPlace stores the palette pick consumed by the next AddNodeAt.
func (s *Store) SetDeviceToPlace(t domain.DeviceType) bool {
	if !t.Valid() {
		return false
	}
	s.deviceToPlace = t
	return true
}

// SetPreferredColor overrides colour cycling for new cables; "" restores
// cycling. Colours outside the palette are ignored.
func (s *Store) SetPreferredColor(c string) bool {
	if c != "" && !ValidColor(c) {
		return false
	}
	s.preferredColor = c
	return true
}

// Select selects a node and clears any cable selection. An empty id clears
// the selection.
func (s *Store) Select(id string) bool {
	if id == "" {
		s.selection = nil
		return true
	}
	if s.nodeIndex(id) < 0 {
		return false
	}
	s.selection = &Selection{Kind: domain.SelectNode, ID: id}
	return true
}

// SelectCable selects a cable and clears any node selection. An empty id
// clears the selection.
func (s *Store) SelectCable(id string) bool {
	if id == "" {
		s.selection = nil
		return true
	}
	if s.cableIndex(id) < 0 {
		return false
	}
	s.selection = &Selection{Kind: domain.SelectCable, ID: id}
	return true
}

// ClearSelection deselects everything.
func (s *Store) ClearSelection() { s.selection = nil }

// ── nodes ────────────────────────────────────────────────────────────────────

// AddNodeAt places a device at a unit-square position. Without an explicit
// type it consumes the pending palette pick. Placement always returns the
// mode to select, so the next device needs a fresh pick.
func (s *Store) AddNodeAt(x, y float64, t ...domain.DeviceType) (string, bool) {
	typ := s.deviceToPlace
	if len(t) > 0 && t[0] != "" {
		typ = t[0]
	}
	if !typ.Valid() || math.IsNaN(x) || math.IsNaN(y) {
		return "", false
	}
	s.track()
	n := domain.DeviceNode{
		ID:    s.newID(),
		Type:  typ,
		X:     geom.Clamp01(x),
		Y:     geom.Clamp01(y),
		Scale: 1,
	}
	s.nodes = append(s.nodes, n)
	s.deviceToPlace = ""
	s.mode = domain.ModeSelect
	return n.ID, true
}

// MoveNode shifts a node by a unit-square delta. The result is clamped to
// the image so nodes cannot be dragged off the plan.
func (s *Store) MoveNode(id string, dx, dy float64) bool {
	i := s.nodeIndex(id)
	if i < 0 || math.IsNaN(dx) || math.IsNaN(dy) || (dx == 0 && dy == 0) {
		return false
	}
	s.track()
	n := &s.nodes[i]
	n.X = geom.Clamp01(n.X + dx)
	n.Y = geom.Clamp01(n.Y + dy)
	return true
}

// RotateNode adds deg degrees to a node's rotation, normalised to [0,360).
func (s *Store) RotateNode(id string, deg float64) bool {
	i := s.nodeIndex(id)
	if i < 0 || math.IsNaN(deg) || math.IsInf(deg, 0) {
		return false
	}
	s.track()
	r := math.Mod(s.nodes[i].Rotation+deg, 360)
	if r < 0 {
		r += 360
	}
	s.nodes[i].Rotation = r
	return true
}

// ScaleNode multiplies a node's presentation scale, within [0.25, 4].
func (s *Store) ScaleNode(id string, factor float64) bool {
	i := s.nodeIndex(id)
	if i < 0 || !(factor > 0) || math.IsInf(factor, 0) {
		return false
	}
	s.track()
	s.nodes[i].Scale = min(max(s.nodes[i].Scale*factor, minNodeScale), maxNodeScale)
	return true
}

// ── cables ───────────────────────────────────────────────────────────────────

// StartCable begins a new cable at a unit-square position. If a cable is
// already being drawn the point extends it instead.
func (s *Store) StartCable(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if s.drawingIndex() >= 0 {
		return s.AddCablePoint(x, y)
	}
	s.track()
	c := domain.Cable{
		ID:     s.newID(),
		Points: []geom.Point{geom.Pt(geom.Clamp01(x), geom.Clamp01(y))},
		Color:  s.nextCableColor(),
	}
	s.cables = append(s.cables, c)
	s.mode = domain.ModeDrawCable
	s.selection = nil
	return true
}

// AddCablePoint appends a point to the cable in progress. It is a no-op when
// no cable is being drawn.
func (s *Store) AddCablePoint(x, y float64) bool {
	i := s.drawingIndex()
	if i < 0 || math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	s.track()
	s.cables[i].Points = append(s.cables[i].Points, geom.Pt(geom.Clamp01(x), geom.Clamp01(y)))
	return true
}

// FinishCable closes the cable in progress, discarding it when it has fewer
// than two points. The mode always returns to select.
func (s *Store) FinishCable() bool {
	i := s.drawingIndex()
	if i < 0 {
		s.mode = domain.ModeSelect
		return false
	}
	s.track()
	if len(s.cables[i].Points) < 2 {
		s.cables = slices.Delete(s.cables, i, i+1)
	} else {
		s.cables[i].Finished = true
	}
	s.mode = domain.ModeSelect
	return true
}

// MoveCablePoint shifts one point of a cable by a unit-square delta,
// clamped to the image.
func (s *Store) MoveCablePoint(cableID string, index int, dx, dy float64) bool {
	i := s.cableIndex(cableID)
	if i < 0 || index < 0 || index >= len(s.cables[i].Points) ||
		math.IsNaN(dx) || math.IsNaN(dy) || (dx == 0 && dy == 0) {
		return false
	}
	s.track()
	p := &s.cables[i].Points[index]
	p.X = geom.Clamp01(p.X + dx)
	p.Y = geom.Clamp01(p.Y + dy)
	return true
}

func (s *Store) nextCableColor() string {
	if s.preferredColor != "" {
		return s.preferredColor
	}
	prev := ""
	if n := len(s.cables); n > 0 {
		prev = s.cables[n-1].Color
	}
	return NextColor(prev)
}

// ── delete / clear ───────────────────────────────────────────────────────────

// DeleteSelected removes the selected node or cable. Removing a rack
// releases its members.
func (s *Store) DeleteSelected() bool {
	if s.selection == nil {
		return false
	}
	switch s.selection.Kind {
	case domain.SelectNode:
		i := s.nodeIndex(s.selection.ID)
		if i < 0 {
			s.selection = nil
			return false
		}
		s.track()
		removed := s.nodes[i]
		s.nodes = slices.Delete(s.nodes, i, i+1)
		if removed.Type.IsRack() {
			for j := range s.nodes {
				if s.nodes[j].ParentRackID == removed.ID {
					s.nodes[j].ParentRackID = ""
				}
			}
		}
	case domain.SelectCable:
		i := s.cableIndex(s.selection.ID)
		if i < 0 {
			s.selection = nil
			return false
		}
		s.track()
		s.cables = slices.Delete(s.cables, i, i+1)
	}
	s.selection = nil
	return true
}

// ClearAll empties the scene and resets interaction state. It is undoable.
func (s *Store) ClearAll() {
	s.track()
	s.nodes = []domain.DeviceNode{}
	s.cables = []domain.Cable{}
	s.mode = domain.ModeSelect
	s.selection = nil
	s.deviceToPlace = ""
}

// ── lookups ──────────────────────────────────────────────────────────────────

func (s *Store) nodeIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.nodes, func(n domain.DeviceNode) bool { return n.ID == id })
}

func (s *Store) cableIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.cables, func(c domain.Cable) bool { return c.ID == id })
}

// drawingIndex returns the index of the unfinished cable. Only the last
// cable can be unfinished.
func (s *Store) drawingIndex() int {
	n := len(s.cables)
	if n == 0 || s.cables[n-1].Finished {
		return -1
	}
	return n - 1
}
