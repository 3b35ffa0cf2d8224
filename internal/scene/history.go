package scene

import (
	"slices"

	"github.com/alexanderramin/sitemap/internal/domain"
)

// DefaultHistoryLimit bounds undo depth when no explicit limit is configured.
const DefaultHistoryLimit = 200

// Selection points at exactly one node or one cable. A nil *Selection means
// nothing is selected, so a node and a cable can never be selected together.
type Selection struct {
	Kind domain.SelectionKind
	ID   string
}

func (s *Selection) clone() *Selection {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Snapshot is an immutable deep copy of the editable state at one instant.
type Snapshot struct {
	Nodes         []domain.DeviceNode
	Cables        []domain.Cable
	Mode          domain.Mode
	Selection     *Selection
	DeviceToPlace domain.DeviceType
}

// Clone returns a deep copy; no slice, map or pointer is shared with s.
func (s Snapshot) Clone() Snapshot {
	sc := domain.Scene{Nodes: s.Nodes, Cables: s.Cables}.Clone()
	return Snapshot{
		Nodes:         sc.Nodes,
		Cables:        sc.Cables,
		Mode:          s.Mode,
		Selection:     s.Selection.clone(),
		DeviceToPlace: s.DeviceToPlace,
	}
}

// History is a linear undo/redo log of snapshots. Recording a new entry
// discards the redo branch.
type History struct {
	past   []Snapshot
	future []Snapshot
	limit  int
}

// NewHistory creates a history keeping at most limit undo entries.
// A limit <= 0 keeps every entry.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record pushes the pre-mutation state and invalidates redo. The snapshot
// must not be mutated by the caller afterwards.
func (h *History) Record(s Snapshot) {
	h.past = append(h.past, s)
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = slices.Delete(h.past, 0, len(h.past)-h.limit)
	}
	h.future = nil
}

// Undo pops the most recent past snapshot, pushing current onto the redo
// stack. It reports false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.past) == 0 {
		return Snapshot{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.future) == 0 {
		return Snapshot{}, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Len returns the number of undo and redo entries.
func (h *History) Len() (undo, redo int) {
	return len(h.past), len(h.future)
}

// Clear forgets every entry.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
}
