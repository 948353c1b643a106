// SVG text backend for tick labels.
// Glyph metrics are estimated, so no font files are needed.

package vector

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

// Options controls SVG rendering.
type Options struct {
	Width      int     // canvas width in pixels
	Height     int     // canvas height in pixels
	DPI        float64 // converts points to pixels (0 = 72)
	FontFamily string  // CSS font family (default sans-serif)
	CharWidth  float64 // average glyph advance as a fraction of the font size (default 0.6)
	LineHeight float64 // line height as a fraction of the font size (default 1.2)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		DPI:        72,
		FontFamily: "sans-serif",
		CharWidth:  0.6,
		LineHeight: 1.2,
	}
}

// SVG accumulates drawing operations and writes them as a standalone
// document. It implements ticklabel.Renderer.
type SVG struct {
	opts     Options
	elements []string
}

// New creates an empty SVG.
func New(opts Options) *SVG {
	def := DefaultOptions()
	if opts.Width == 0 {
		opts.Width = def.Width
	}
	if opts.Height == 0 {
		opts.Height = def.Height
	}
	if opts.DPI == 0 {
		opts.DPI = def.DPI
	}
	if opts.FontFamily == "" {
		opts.FontFamily = def.FontFamily
	}
	if opts.CharWidth == 0 {
		opts.CharWidth = def.CharWidth
	}
	if opts.LineHeight == 0 {
		opts.LineHeight = def.LineHeight
	}
	return &SVG{opts: opts}
}

// PointsToPixels converts a font size in points to pixels.
func (s *SVG) PointsToPixels(pt float64) float64 {
	return pt * s.opts.DPI / 72
}

// Measure estimates the extent of text from its rune count.
func (s *SVG) Measure(text string, size float64) ticklabel.Size {
	px := s.PointsToPixels(size)
	n := len([]rune(text))
	return ticklabel.Size{
		W: float64(n) * px * s.opts.CharWidth,
		H: px * s.opts.LineHeight,
	}
}

// BoundingBox returns the axis-aligned envelope of a label.
func (s *SVG) BoundingBox(l ticklabel.Label) ticklabel.Rect {
	return ticklabel.TextBox(s.Measure(l.Text, l.Size), l)
}

// DrawText adds a text element centered on the label's box.
func (s *SVG) DrawText(l ticklabel.Label) {
	if l.Text == "" {
		return
	}
	box := s.BoundingBox(l)
	x, y := box.X, s.flip(box.Y)

	transform := ""
	if l.Rotation != 0 {
		// SVG rotates clockwise in its y-down space.
		transform = fmt.Sprintf(` transform="rotate(%.1f %.1f %.1f)"`, -l.Rotation, x, y)
	}
	s.elements = append(s.elements, fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.1fpx" class="tick-label"%s>%s</text>
`, x, y, s.PointsToPixels(l.Size), transform, html.EscapeString(l.Text)))
}

// DrawLine adds a line between two display points.
func (s *SVG) DrawLine(p1, p2 ticklabel.Point) {
	s.elements = append(s.elements, fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="tick"/>
`, p1.X, s.flip(p1.Y), p2.X, s.flip(p2.Y)))
}

// DrawPolygon adds a closed outline.
func (s *SVG) DrawPolygon(pts []ticklabel.Point) {
	if len(pts) < 2 {
		return
	}
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.1f,%.1f", p.X, s.flip(p.Y))
	}
	s.elements = append(s.elements, fmt.Sprintf(`<polygon points="%s" class="frame"/>
`, strings.Join(coords, " ")))
}

// String returns the complete SVG document.
func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .frame { fill: none; stroke: #333; stroke-width: 1.5; }
  .tick { stroke: #333; stroke-width: 1; }
  .tick-label { font-family: %s; fill: #333; text-anchor: middle; dominant-baseline: central; }
</style>
`, s.opts.Width, s.opts.Height, s.opts.Width, s.opts.Height, s.opts.FontFamily))

	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>
`, s.opts.Width, s.opts.Height))

	for _, e := range s.elements {
		sb.WriteString(e)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) flip(y float64) float64 {
	return float64(s.opts.Height) - y
}

var _ ticklabel.Renderer = (*SVG)(nil)
