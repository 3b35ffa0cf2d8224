package domain

import "time"

// Floor is one independently editable scene of a project plus its display
// metadata. OrderIndex defines tab order and is kept contiguous from 0.
type Floor struct {
	ID         string
	ProjectID  string
	Name       string
	OrderIndex int

	// Background image as returned by the upload helper. The natural size is
	// only used for its aspect ratio.
	ImageURI    string
	ImageWidth  int
	ImageHeight int

	Scene     Scene
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Aspect returns the image's width/height ratio, or 0 when unknown.
func (f *Floor) Aspect() float64 {
	if f.ImageWidth <= 0 || f.ImageHeight <= 0 {
		return 0
	}
	return float64(f.ImageWidth) / float64(f.ImageHeight)
}

// Clone returns a deep copy of the floor and its scene.
func (f *Floor) Clone() *Floor {
	c := *f
	c.Scene = f.Scene.Clone()
	return &c
}
