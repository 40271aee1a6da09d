package jigsaw

import (
	"image"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets and path points throughout
// the API. Coordinates are in board pixels with Y increasing downward.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp interpolates linearly from v (t=0) to o (t=1).
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Round snaps both coordinates to the nearest integer pixel. Halves round up,
// so 2.5 becomes 3 and -2.5 becomes -2.
func (v Vec2) Round() Vec2 {
	return Vec2{roundPx(v.X), roundPx(v.Y)}
}

func roundPx(f float64) float64 {
	return math.Floor(f + 0.5)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Bounds is an integer pixel bounding box. Min is inclusive, Max exclusive
// when converted to an image.Rectangle.
type Bounds struct {
	MinX int `json:"minX"`
	MinY int `json:"minY"`
	MaxX int `json:"maxX"`
	MaxY int `json:"maxY"`
}

// Width returns MaxX-MinX.
func (b Bounds) Width() int { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b Bounds) Height() int { return b.MaxY - b.MinY }

// Min returns the top-left corner as a Vec2.
func (b Bounds) Min() Vec2 { return Vec2{float64(b.MinX), float64(b.MinY)} }

// Rect converts the bounds to a floating point Rect.
func (b Bounds) Rect() Rect {
	return Rect{float64(b.MinX), float64(b.MinY), float64(b.Width()), float64(b.Height())}
}

// Image converts the bounds to an image.Rectangle.
func (b Bounds) Image() image.Rectangle {
	return image.Rect(b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Path is an ordered point sequence: a control polyline, a sampled curve or a
// closed piece outline.
type Path []Vec2

// Bounds returns the integer bounding box of the path. The minimum is floored
// and the maximum ceiled so the box never clips a fractional outline.
// An empty path yields the zero Bounds.
func (p Path) Bounds() Bounds {
	if len(p) == 0 {
		return Bounds{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Bounds{
		MinX: int(math.Floor(minX)),
		MinY: int(math.Floor(minY)),
		MaxX: int(math.Ceil(maxX)),
		MaxY: int(math.Ceil(maxY)),
	}
}

// Translate returns a copy of the path offset by d.
func (p Path) Translate(d Vec2) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[i] = pt.Add(d)
	}
	return out
}

// Reverse returns a reversed copy of the path.
func (p Path) Reverse() Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Closed reports whether the path has at least two points and its first and
// last points are equal.
func (p Path) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Area returns the signed shoelace area of the path treated as a polygon.
// Positive for clockwise winding in screen space (Y down).
func (p Path) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Contains reports whether (x, y) lies inside the polygon described by the
// path using the even-odd rule. Works for concave outlines; the closing
// point may be present or omitted.
func (p Path) Contains(x, y float64) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > y) != (b.Y > y) &&
			x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
