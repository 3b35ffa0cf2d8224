// Package geom converts between screen pixels and the unit-square coordinates
// stored in scenes, and owns the pan/zoom viewport applied to the canvas.
//
// Unit-square coordinates express a position as a fraction (0..1) of the
// floor-plan image's rendered width and height, so stored geometry does not
// depend on zoom, pan, or the resolution of the device that authored it.
package geom

import "math"

// Point is a 2D position. Depending on context it holds unit-square
// coordinates (scene model) or screen pixels (gestures, rendering).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is the floor-plan image's rendered rectangle in screen pixels.
// It is recomputed whenever the layout or the viewport changes.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Contains reports whether the screen point lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ToScreen maps a unit-square position to screen pixels inside r.
func ToScreen(u Point, r Rect) Point {
	return Point{
		X: r.X + u.X*r.Width,
		Y: r.Y + u.Y*r.Height,
	}
}

// ToUnit maps a screen pixel to unit-square coordinates relative to r.
// The result is clamped to [0,1] on both axes, so a gesture outside the
// image lands on the nearest in-bounds position. A degenerate axis maps to 0.
func ToUnit(p Point, r Rect) Point {
	return Point{
		X: Clamp01(axisToUnit(p.X, r.X, r.Width)),
		Y: Clamp01(axisToUnit(p.Y, r.Y, r.Height)),
	}
}

// ScaleDelta converts a pixel displacement into a unit-square displacement.
// Unlike ToUnit it does not clamp; callers decide whether the moved position
// must stay inside the image.
func ScaleDelta(d Point, r Rect) Point {
	return Point{
		X: axisToUnit(d.X, 0, r.Width),
		Y: axisToUnit(d.Y, 0, r.Height),
	}
}

func axisToUnit(v, origin, length float64) float64 {
	if !(length > 0) {
		return 0
	}
	return (v - origin) / length
}

// Clamp01 pins v into [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// FitRect letterboxes an image with the given aspect ratio (width/height)
// into area, centred. A non-positive aspect fills the whole area.
func FitRect(area Rect, aspect float64) Rect {
	if area.Empty() || !(aspect > 0) {
		return area
	}
	w := area.Width
	h := w / aspect
	if h > area.Height {
		h = area.Height
		w = h * aspect
	}
	return Rect{
		X:      area.X + (area.Width-w)/2,
		Y:      area.Y + (area.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = Clamp01(t)
	return Distance(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// PolylineLength sums the segment lengths of pts.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}
