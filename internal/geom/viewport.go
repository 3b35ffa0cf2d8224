package geom

import "math"

// Zoom bounds applied on every scale update.
const (
	MinScale = 0.3
	MaxScale = 4.0
)

// Viewport is the pan/zoom transform applied uniformly to the canvas:
// screen = content*Scale + (TranslateX, TranslateY).
// It is display state only and is never persisted or undone.
type Viewport struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Identity returns the untransformed viewport.
func Identity() Viewport {
	return Viewport{Scale: 1}
}

// Project applies the viewport to the unzoomed image rect, yielding the rect
// the image actually occupies on screen.
func (v Viewport) Project(base Rect) Rect {
	return Rect{
		X:      base.X*v.Scale + v.TranslateX,
		Y:      base.Y*v.Scale + v.TranslateY,
		Width:  base.Width * v.Scale,
		Height: base.Height * v.Scale,
	}
}

// ViewportController accumulates pan and pinch deltas into a Viewport and
// notifies listeners after every change.
type ViewportController struct {
	vp        Viewport
	listeners []func(Viewport)
}

// NewViewportController starts at the identity transform.
func NewViewportController() *ViewportController {
	return &ViewportController{vp: Identity()}
}

// Viewport returns the current transform.
func (c *ViewportController) Viewport() Viewport {
	return c.vp
}

// OnChange registers fn to be called with the new viewport after each update.
func (c *ViewportController) OnChange(fn func(Viewport)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Pan adds a drag delta in screen pixels. Panning is unbounded.
func (c *ViewportController) Pan(dx, dy float64) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	c.vp.TranslateX += dx
	c.vp.TranslateY += dy
	c.notify()
}

// Zoom multiplies the scale by factor, clamped to [MinScale, MaxScale].
// Non-positive or NaN factors are ignored.
func (c *ViewportController) Zoom(factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	c.vp.Scale = clampScale(c.vp.Scale * factor)
	c.notify()
}

// ZoomAt zooms by factor while keeping the screen point focal fixed, the way
// a mouse-wheel or pinch centred on a spot behaves.
func (c *ViewportController) ZoomAt(factor float64, focal Point) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	old := c.vp.Scale
	next := clampScale(old * factor)
	// content point under focal before the zoom
	cx := (focal.X - c.vp.TranslateX) / old
	cy := (focal.Y - c.vp.TranslateY) / old
	c.vp.Scale = next
	c.vp.TranslateX = focal.X - cx*next
	c.vp.TranslateY = focal.Y - cy*next
	c.notify()
}

// Reset restores the identity transform.
func (c *ViewportController) Reset() {
	c.vp = Identity()
	c.notify()
}

func (c *ViewportController) notify() {
	for _, fn := range c.listeners {
		fn(c.vp)
	}
}

func clampScale(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return 1
	case s < MinScale:
		return MinScale
	case s > MaxScale:
		return MaxScale
	default:
		return s
	}
}
