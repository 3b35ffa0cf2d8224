package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport_PanAccumulates(t *testing.T) {
	c := NewViewportController()
	c.Pan(10, -5)
	c.Pan(2.5, 15)
	vp := c.Viewport()
	assert.InDelta(t, 12.5, vp.TranslateX, eps)
	assert.InDelta(t, 10, vp.TranslateY, eps)
	assert.Equal(t, 1.0, vp.Scale)
}

func TestViewport_ZoomClampsLow(t *testing.T) {
	c := NewViewportController()
	for i := 0; i < 50; i++ {
		c.Zoom(0.8)
	}
	assert.Equal(t, MinScale, c.Viewport().Scale)
}

func TestViewport_ZoomClampsHigh(t *testing.T) {
	c := NewViewportController()
	for i := 0; i < 50; i++ {
		c.Zoom(1.5)
	}
	assert.Equal(t, MaxScale, c.Viewport().Scale)
}

func TestViewport_ZoomIgnoresInvalidFactors(t *testing.T) {
	c := NewViewportController()
	c.Zoom(0)
	c.Zoom(-2)
	c.Zoom(math.NaN())
	c.Zoom(math.Inf(1))
	assert.Equal(t, Identity(), c.Viewport())
}

func TestViewport_ZoomAtKeepsFocalPoint(t *testing.T) {
	c := NewViewportController()
	c.Pan(30, 40)
	base := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	focal := Pt(80, 90)

	before := ToUnit(focal, c.Viewport().Project(base))
	c.ZoomAt(2, focal)
	after := ToUnit(focal, c.Viewport().Project(base))

	assert.InDelta(t, 2.0, c.Viewport().Scale, eps)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestViewport_Project(t *testing.T) {
	vp := Viewport{Scale: 2, TranslateX: 5, TranslateY: -5}
	r := vp.Project(Rect{X: 10, Y: 10, Width: 20, Height: 30})
	assert.Equal(t, Rect{X: 25, Y: 15, Width: 40, Height: 60}, r)
}

func TestViewport_ListenersSeeEveryUpdate(t *testing.T) {
	c := NewViewportController()
	var seen []Viewport
	c.OnChange(func(v Viewport) { seen = append(seen, v) })

	c.Pan(1, 1)
	c.Zoom(2)
	c.Reset()

	if assert.Len(t, seen, 3) {
		assert.Equal(t, 2.0, seen[1].Scale)
		assert.Equal(t, Identity(), seen[2])
	}
}
