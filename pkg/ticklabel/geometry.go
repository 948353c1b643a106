// Geometric primitives shared by the layout engine and the text backends.
// Display coordinates have their origin at the bottom left with y increasing
// upward; backends drawing onto y-down devices flip at the last moment.

package ticklabel

import "math"

// Point represents a 2D display coordinate.
type Point struct {
	X, Y float64
}

// Size is the extent of a piece of text in pixels.
type Size struct {
	W, H float64
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X, Y float64 // Center
	W, H float64 // Full width and height
}

// RectFromCorners builds a Rect from two opposite corners in any order.
func RectFromCorners(x0, y0, x1, y1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: (x0 + x1) / 2, Y: (y0 + y1) / 2, W: x1 - x0, H: y1 - y0}
}

// Min returns the bottom-left corner.
func (r Rect) Min() Point {
	return Point{r.X - r.W/2, r.Y - r.H/2}
}

// Max returns the top-right corner.
func (r Rect) Max() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X, r.Y}
}

// Overlaps reports whether r and o share a region of positive area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return RectOverlap(r, o) > 0
}

// RectOverlap returns the overlap area between two rectangles.
// Returns 0 if they don't overlap.
func RectOverlap(a, b Rect) float64 {
	// Half dimensions
	aHalfW, aHalfH := a.W/2, a.H/2
	bHalfW, bHalfH := b.W/2, b.H/2

	// Check for separation
	dx := math.Abs(a.X - b.X)
	dy := math.Abs(a.Y - b.Y)

	overlapX := (aHalfW + bHalfW) - dx
	overlapY := (aHalfH + bHalfH) - dy

	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}

	return overlapX * overlapY
}

// CountOverlaps returns how many of boxes overlap r.
func CountOverlaps(r Rect, boxes []Rect) int {
	n := 0
	for _, b := range boxes {
		if r.Overlaps(b) {
			n++
		}
	}
	return n
}

// RotatedSize returns the extent of the axis-aligned envelope of a w×h box
// rotated by deg degrees.
func RotatedSize(s Size, deg float64) Size {
	if deg == 0 {
		return s
	}
	rad := deg * math.Pi / 180
	c := math.Abs(math.Cos(rad))
	sn := math.Abs(math.Sin(rad))
	return Size{
		W: s.W*c + s.H*sn,
		H: s.W*sn + s.H*c,
	}
}

// TextBox computes the bounding box of a label whose unrotated text measures
// size. The text is rotated first and the alignment is then applied to the
// rotated envelope, so the returned rectangle is always axis-aligned.
func TextBox(size Size, l Label) Rect {
	env := RotatedSize(size, l.Rotation)

	x := l.Pos.X
	switch l.HAlign {
	case AlignLeft:
		x += env.W / 2
	case AlignRight:
		x -= env.W / 2
	}

	y := l.Pos.Y
	switch l.VAlign {
	case AlignBottom:
		y += env.H / 2
	case AlignTop:
		y -= env.H / 2
	}

	return Rect{X: x, Y: y, W: env.W, H: env.H}
}
