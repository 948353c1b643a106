package ticklabel

import (
	"fmt"
	"strings"
)

// HAlign is the horizontal alignment of a label relative to its position.
type HAlign int

const (
	AlignCenter HAlign = iota // Position is the horizontal middle of the text
	AlignLeft                 // Position is the left edge
	AlignRight                // Position is the right edge
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	}
	return "center"
}

// VAlign is the vertical alignment of a label relative to its position.
type VAlign int

const (
	AlignMiddle VAlign = iota // Position is the vertical middle of the text
	AlignBottom               // Position is the bottom edge
	AlignTop                  // Position is the top edge
)

func (a VAlign) String() string {
	switch a {
	case AlignBottom:
		return "bottom"
	case AlignTop:
		return "top"
	}
	return "center"
}

// Label is a positioned piece of text handed to a backend.
type Label struct {
	Text     string
	Pos      Point
	HAlign   HAlign
	VAlign   VAlign
	Size     float64 // font size in points
	Rotation float64 // degrees, counter-clockwise
}

// Measurer is the read-only half of a text backend.
type Measurer interface {
	// PointsToPixels converts a font size in points to device pixels.
	PointsToPixels(pt float64) float64
	// Measure returns the unrotated extent of text at the given size.
	Measure(text string, size float64) Size
	// BoundingBox returns the axis-aligned envelope of a positioned label.
	BoundingBox(l Label) Rect
}

// Renderer is a text backend that can also draw.
type Renderer interface {
	Measurer
	DrawText(l Label)
}

// Drawable is implemented by anything that places and draws its labels onto a
// Renderer, avoiding the reserved boxes, and reports what it drew.
type Drawable interface {
	Draw(r Renderer, reserved []Rect) []Rect
}

// FrameKind selects the layout strategy for the frame enclosing the plot.
type FrameKind int

const (
	FrameRectangular FrameKind = iota
	FrameArbitrary
)

func (k FrameKind) String() string {
	if k == FrameRectangular {
		return "rectangular"
	}
	return "arbitrary"
}

// ParseFrameKind parses a frame kind name. The empty string means rectangular.
func ParseFrameKind(s string) (FrameKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rectangular", "rect":
		return FrameRectangular, nil
	case "arbitrary", "curved", "elliptical":
		return FrameArbitrary, nil
	}
	return FrameRectangular, fmt.Errorf("unknown frame kind %q", s)
}
