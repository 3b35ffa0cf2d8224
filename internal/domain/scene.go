package domain

import (
	"maps"
	"slices"

	"github.com/alexanderramin/sitemap/internal/geom"
)

// Evidence is the proof attached to a status change: a photo, a note, and
// the materials consumed (e.g. "cable_m": 12.5, "connectors": 4).
type Evidence struct {
	PhotoURI  string             `json:"photoUri,omitempty"`
	Note      string             `json:"note,omitempty"`
	Materials map[string]float64 `json:"materials,omitempty"`
}

// Clone returns a deep copy, or nil for a nil receiver.
func (e *Evidence) Clone() *Evidence {
	if e == nil {
		return nil
	}
	c := *e
	c.Materials = maps.Clone(e.Materials)
	return &c
}

// DeviceNode is a piece of equipment placed on the floor plan.
// X and Y are unit-square coordinates relative to the rendered image.
type DeviceNode struct {
	ID       string     `json:"id"`
	Type     DeviceType `json:"type"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Rotation float64    `json:"rotation"`
	Scale    float64    `json:"scale"`

	// ParentRackID is a lookup key for the rack that contains this device.
	// Racks do not keep a children list; membership is always derived.
	ParentRackID string `json:"parentRackId,omitempty"`

	Status   InstallStatus `json:"status,omitempty"`
	Evidence *Evidence     `json:"evidence,omitempty"`
}

// Position returns the node's unit-square position.
func (n DeviceNode) Position() geom.Point {
	return geom.Pt(n.X, n.Y)
}

// Clone returns a deep copy.
func (n DeviceNode) Clone() DeviceNode {
	n.Evidence = n.Evidence.Clone()
	return n
}

// Cable is a polyline routed across the floor plan.
type Cable struct {
	ID       string       `json:"id"`
	Points   []geom.Point `json:"points"`
	Color    string       `json:"color"`
	Finished bool         `json:"finished"`

	Status   InstallStatus `json:"status,omitempty"`
	Evidence *Evidence     `json:"evidence,omitempty"`
}

// Clone returns a deep copy, including the point slice.
func (c Cable) Clone() Cable {
	c.Points = slices.Clone(c.Points)
	c.Evidence = c.Evidence.Clone()
	return c
}

// Scene is the content of one floor: its devices and cables. It is the unit
// persisted to record storage, serialised wholesale as JSON.
type Scene struct {
	Nodes  []DeviceNode `json:"nodes"`
	Cables []Cable      `json:"cables"`
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s Scene) Clone() Scene {
	out := Scene{
		Nodes:  make([]DeviceNode, len(s.Nodes)),
		Cables: make([]Cable, len(s.Cables)),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, c := range s.Cables {
		out.Cables[i] = c.Clone()
	}
	return out
}

// Empty reports whether the scene holds no devices and no cables.
func (s Scene) Empty() bool {
	return len(s.Nodes) == 0 && len(s.Cables) == 0
}

// Normalize repairs fields a stored scene may omit: a zero scale becomes the
// identity and unfinished cables are dropped, since drawing never survives
// a save.
func (s *Scene) Normalize() {
	for i := range s.Nodes {
		if s.Nodes[i].Scale == 0 {
			s.Nodes[i].Scale = 1
		}
	}
	s.Cables = slices.DeleteFunc(s.Cables, func(c Cable) bool {
		return !c.Finished || len(c.Points) < 2
	})
	if s.Nodes == nil {
		s.Nodes = []DeviceNode{}
	}
	if s.Cables == nil {
		s.Cables = []Cable{}
	}
}
