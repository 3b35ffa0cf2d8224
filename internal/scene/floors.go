package scene

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/google/uuid"
)

// Floors owns a project's floors and mirrors the active one into a Store.
// Inactive floors hold frozen copies of their scenes; the active floor's
// slot is refreshed from the store whenever the active floor changes or the
// caller captures for saving. At least one floor always exists.
type Floors struct {
	store     *Store
	projectID string
	floors    []*domain.Floor // sorted by OrderIndex
	activeID  string
	dirty     bool // structural edits (add/rename/reorder/...) since MarkSaved
	savedRev  uint64

	newID func() string
	now   func() time.Time
}

// NewFloors adopts floors (deep-copied) and opens the first by order. An
// empty list gets a single empty floor named defaultName.
func NewFloors(store *Store, projectID string, floors []*domain.Floor, defaultName string) *Floors {
	f := &Floors{
		store:     store,
		projectID: projectID,
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, fl := range floors {
		if fl != nil {
			f.floors = append(f.floors, fl.Clone())
		}
	}
	slices.SortStableFunc(f.floors, func(a, b *domain.Floor) int { return a.OrderIndex - b.OrderIndex })
	f.reindex()
	if len(f.floors) == 0 {
		f.floors = append(f.floors, f.newFloor(defaultName, 0))
	}
	f.activeID = f.floors[0].ID
	store.Load(f.floors[0].Scene)
	f.MarkSaved()
	return f
}

// Store returns the store the active floor is mirrored into.
func (f *Floors) Store() *Store { return f.store }

// ProjectID returns the project the floors belong to.
func (f *Floors) ProjectID() string { return f.projectID }

// ActiveID returns the id of the active floor.
func (f *Floors) ActiveID() string { return f.activeID }

// Active returns a copy of the active floor with the store's live content.
func (f *Floors) Active() *domain.Floor {
	i := f.index(f.activeID)
	c := f.floors[i].Clone()
	c.Scene = f.store.Content()
	return c
}

// ActivePosition returns the active floor's position in display order.
func (f *Floors) ActivePosition() int { return f.index(f.activeID) }

// Len returns the number of floors.
func (f *Floors) Len() int { return len(f.floors) }

// List returns copies of every floor in display order. The active floor's
// scene comes from the store.
func (f *Floors) List() []*domain.Floor {
	out := make([]*domain.Floor, len(f.floors))
	for i, fl := range f.floors {
		if fl.ID == f.activeID {
			out[i] = f.Active()
			continue
		}
		out[i] = fl.Clone()
	}
	return out
}

// Capture writes the store's content back into the active floor's slot and
// returns copies of all floors, ready to persist.
func (f *Floors) Capture() []*domain.Floor {
	f.captureActive()
	return f.List()
}

// Dirty reports unsaved structural or scene edits since MarkSaved.
func (f *Floors) Dirty() bool {
	return f.dirty || f.store.Revision() != f.savedRev
}

// MarkSaved records the current state as persisted.
func (f *Floors) MarkSaved() {
	f.dirty = false
	f.savedRev = f.store.Revision()
}

// AddFloor captures the current floor, appends a new empty floor and opens
// it. A blank name falls back to "Floor N".
func (f *Floors) AddFloor(name string) *domain.Floor {
	f.captureActive()
	fl := f.newFloor(name, len(f.floors))
	f.floors = append(f.floors, fl)
	f.activeID = fl.ID
	f.store.Load(domain.Scene{})
	f.dirty = true
	return fl.Clone()
}

// OpenFloor makes id the active floor. Switching captures the outgoing
// floor, loads the target, and clears selection and undo history.
func (f *Floors) OpenFloor(id string) bool {
	if id == f.activeID {
		return false
	}
	i := f.index(id)
	if i < 0 {
		return false
	}
	f.captureActive()
	f.activeID = id
	rev := f.store.Revision()
	f.store.Load(f.floors[i].Scene)
	// switching floors is not an edit
	if f.savedRev == rev {
		f.savedRev = f.store.Revision()
	}
	return true
}

// OpenAt opens the floor at a display position.
func (f *Floors) OpenAt(pos int) bool {
	if pos < 0 || pos >= len(f.floors) {
		return false
	}
	return f.OpenFloor(f.floors[pos].ID)
}

// DeleteFloor removes a floor and re-indexes the rest. The last remaining
// floor is emptied in place instead. Deleting the active floor opens the
// first remaining one.
func (f *Floors) DeleteFloor(id string) bool {
	i := f.index(id)
	if i < 0 {
		return false
	}
	f.dirty = true
	if len(f.floors) == 1 {
		f.floors[0].Scene = domain.Scene{Nodes: []domain.DeviceNode{}, Cables: []domain.Cable{}}
		f.floors[0].UpdatedAt = f.now()
		f.store.Load(f.floors[0].Scene)
		return true
	}
	wasActive := id == f.activeID
	f.floors = slices.Delete(f.floors, i, i+1)
	f.reindex()
	if wasActive {
		f.activeID = f.floors[0].ID
		f.store.Load(f.floors[0].Scene)
	}
	return true
}

// ReorderFloor swaps the floors at display positions from and to. Out of
// range positions are ignored.
func (f *Floors) ReorderFloor(from, to int) bool {
	n := len(f.floors)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	f.floors[from], f.floors[to] = f.floors[to], f.floors[from]
	f.reindex()
	f.dirty = true
	return true
}

// RenameFloor sets a floor's name. Blank names are ignored.
func (f *Floors) RenameFloor(id, name string) bool {
	name = strings.TrimSpace(name)
	i := f.index(id)
	if i < 0 || name == "" {
		return false
	}
	f.floors[i].Name = name
	f.floors[i].UpdatedAt = f.now()
	f.dirty = true
	return true
}

// SetImage records a floor's background image and its natural size.
func (f *Floors) SetImage(id, uri string, width, height int) bool {
	i := f.index(id)
	if i < 0 {
		return false
	}
	f.floors[i].ImageURI = uri
	f.floors[i].ImageWidth = max(width, 0)
	f.floors[i].ImageHeight = max(height, 0)
	f.floors[i].UpdatedAt = f.now()
	f.dirty = true
	return true
}

func (f *Floors) captureActive() {
	if i := f.index(f.activeID); i >= 0 {
		f.floors[i].Scene = f.store.Content()
	}
}

func (f *Floors) newFloor(name string, order int) *domain.Floor {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Floor %d", order+1)
	}
	now := f.now()
	return &domain.Floor{
		ID:         f.newID(),
		ProjectID:  f.projectID,
		Name:       name,
		OrderIndex: order,
		Scene:      domain.Scene{Nodes: []domain.DeviceNode{}, Cables: []domain.Cable{}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (f *Floors) reindex() {
	for i, fl := range f.floors {
		fl.OrderIndex = i
	}
}

func (f *Floors) index(id string) int {
	return slices.IndexFunc(f.floors, func(fl *domain.Floor) bool { return fl.ID == id })
}
