// Anchor computation for tick labels.
// Keeps each label outside the frame and oriented against the local tangent.

package ticklabel

import "math"

// DefaultPad is the clearance, in line heights, added between an arbitrary
// frame and its labels.
const DefaultPad = 0.3

// sectorTolerance is the half-width of each angular sector in degrees.
const sectorTolerance = 45.0

// Sector is the quadrant a tangent angle falls in.
type Sector int

const (
	SectorRight  Sector = iota // within 45° of 0°
	SectorTop                  // within 45° of 90°
	SectorLeft                 // within 45° of 180°
	SectorBottom               // everything else, including 270° and -90°
)

// AngleSector classifies a tangent angle. Angles are not wrapped: 350° is
// more than 45° from 0°, 90° and 180° and therefore lands in SectorBottom.
func AngleSector(deg float64) Sector {
	switch {
	case math.Abs(deg) < sectorTolerance:
		return SectorRight
	case math.Abs(deg-90) < sectorTolerance:
		return SectorTop
	case math.Abs(deg-180) < sectorTolerance:
		return SectorLeft
	}
	return SectorBottom
}

// Anchor is where and how a label is drawn.
type Anchor struct {
	Pos    Point
	HAlign HAlign
	VAlign VAlign
}

// ComputeAnchor returns the label anchor for a tick at pixel whose axis has
// tangent angle deg. text is the unrotated size of the label and lineHeight
// is the font size in pixels. pad is only used for arbitrary frames.
// Unknown frame kinds use the arbitrary layout.
func ComputeAnchor(frame FrameKind, deg float64, pixel Point, text Size, lineHeight, pad float64) Anchor {
	if frame == FrameRectangular {
		return rectangularAnchor(deg, pixel, lineHeight)
	}
	return arbitraryAnchor(deg, pixel, text, lineHeight, pad)
}

// rectangularAnchor uses fixed offsets per sector. All labels hang from
// their bottom edge.
func rectangularAnchor(deg float64, pixel Point, lh float64) Anchor {
	var dx, dy float64
	ha := AlignCenter

	switch AngleSector(deg) {
	case SectorRight:
		ha = AlignRight
		dx, dy = -0.5*lh, -0.5*lh
	case SectorTop:
		dy = -1.5 * lh
	case SectorLeft:
		ha = AlignLeft
		dx, dy = 0.5*lh, -0.5*lh
	default:
		dy = 0.2 * lh
	}

	return Anchor{
		Pos:    Point{pixel.X + dx, pixel.Y + dy},
		HAlign: ha,
		VAlign: AlignBottom,
	}
}

// arbitraryAnchor projects the tangent onto the text box to pick the anchor
// edge, then pushes the label pad line heights further out along the same
// direction.
func arbitraryAnchor(deg float64, pixel Point, text Size, lh, pad float64) Anchor {
	w, h := text.W, text.H
	rad := deg * math.Pi / 180
	ax, ay := math.Cos(rad), math.Sin(rad)

	var dx, dy float64
	switch AngleSector(deg) {
	case SectorRight:
		dx, dy = w, ay*h
	case SectorTop:
		dx, dy = ax*w, h
	case SectorLeft:
		dx, dy = -w, ay*h
	default:
		dx, dy = ax*w, -h
	}
	dx *= 0.5
	dy *= 0.5

	dist := math.Hypot(dx, dy)
	if dist == 0 || math.IsNaN(dist) || math.IsInf(dist, 0) {
		dx, dy = 0, 0
	} else {
		dx += dx / dist * lh * pad
		dy += dy / dist * lh * pad
	}

	return Anchor{
		Pos:    Point{pixel.X - dx, pixel.Y - dy},
		HAlign: AlignCenter,
		VAlign: AlignMiddle,
	}
}
