// Package geo provides the coordinate geometry shared by all mini-games:
// points, rectangles, and the affine mapping from camera-frame pixel space
// into a game's play field.
package geo

// Point is a 2D point in pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle defined by its top-left origin and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewRect creates a Rect from origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the x coordinate of the rectangle center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the y coordinate of the rectangle center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Map transforms a point in src coordinates into dst coordinates.
// It is a pure affine transform:
//
//	dst = (p - src.origin) * (dst.size / src.size) + dst.origin
//
// Mapping the four corners of src yields exactly the four corners of dst.
// Points outside src map to points outside dst; callers that use the result
// as a collision anchor should clamp it with ClampPoint first.
func Map(p Point, src, dst Rect) Point {
	return Point{
		X: (p.X-src.X)*(dst.W/src.W) + dst.X,
		Y: (p.Y-src.Y)*(dst.H/src.H) + dst.Y,
	}
}

// ClampPoint clamps p into r, leaving a margin on every side. The margin
// is typically the half-size of the object anchored at p, so the object
// itself stays inside r.
func ClampPoint(p Point, r Rect, margin float64) Point {
	return Point{
		X: clamp(p.X, r.X+margin, r.Right()-margin),
		Y: clamp(p.Y, r.Y+margin, r.Bottom()-margin),
	}
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
