// Package term draws tick labels onto a terminal screen. Display coordinates
// stay in pixels; each cell covers CellWidth×CellHeight of them, so a tick
// document laid out for an image can be previewed unchanged.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

// Styles
var (
	StyleLabel = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleFrame = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleTick  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

// Options controls the pixel-to-cell mapping.
type Options struct {
	CellWidth  float64 // pixels per column
	CellHeight float64 // pixels per row
	DPI        float64 // converts points to pixels
}

// DefaultOptions returns a mapping where a 10pt label is about one row tall.
func DefaultOptions() Options {
	return Options{CellWidth: 8, CellHeight: 16, DPI: 72}
}

// Screen is a ticklabel.Renderer on a tcell screen. Rotation is ignored:
// terminal text is always horizontal.
type Screen struct {
	screen tcell.Screen
	opts   Options
}

// New wraps an initialised tcell screen.
func New(screen tcell.Screen, opts Options) *Screen {
	def := DefaultOptions()
	if opts.CellWidth <= 0 {
		opts.CellWidth = def.CellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = def.CellHeight
	}
	if opts.DPI <= 0 {
		opts.DPI = def.DPI
	}
	return &Screen{screen: screen, opts: opts}
}

// PixelSize returns the display extent covered by the screen.
func (s *Screen) PixelSize() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.opts.CellWidth, float64(rows) * s.opts.CellHeight
}

// PointsToPixels converts a font size in points to pixels.
func (s *Screen) PointsToPixels(pt float64) float64 {
	return pt * s.opts.DPI / 72
}

// Measure returns the cells text occupies, in pixels. Text is always one row
// tall whatever its size.
func (s *Screen) Measure(text string, size float64) ticklabel.Size {
	return ticklabel.Size{
		W: float64(runewidth.StringWidth(text)) * s.opts.CellWidth,
		H: s.opts.CellHeight,
	}
}

// BoundingBox returns the box of a label, ignoring rotation.
func (s *Screen) BoundingBox(l ticklabel.Label) ticklabel.Rect {
	l.Rotation = 0
	return ticklabel.TextBox(s.Measure(l.Text, l.Size), l)
}

// DrawText writes a label into the cells its box starts in.
func (s *Screen) DrawText(l ticklabel.Label) {
	if l.Text == "" {
		return
	}
	box := s.BoundingBox(l)
	lo := box.Min()
	col, row := s.cell(ticklabel.Point{X: lo.X, Y: lo.Y + box.H/2})
	s.drawString(col, row, l.Text, StyleLabel)
}

// DrawLine plots a tick mark between two display points.
func (s *Screen) DrawLine(p1, p2 ticklabel.Point) {
	s.drawLine(p1, p2, StyleTick)
}

// DrawPolygon draws a closed outline.
func (s *Screen) DrawPolygon(pts []ticklabel.Point) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		s.drawLine(pts[i], pts[(i+1)%len(pts)], StyleFrame)
	}
}

func (s *Screen) drawLine(p1, p2 ticklabel.Point, style tcell.Style) {
	c1, r1 := s.cell(p1)
	c2, r2 := s.cell(p2)

	ch := '·'
	switch {
	case r1 == r2:
		ch = '─'
	case c1 == c2:
		ch = '│'
	}

	steps := max(abs(c2-c1), abs(r2-r1))
	for i := 0; i <= steps; i++ {
		c, r := c1, r1
		if steps > 0 {
			t := float64(i) / float64(steps)
			c += int(math.Round(t * float64(c2-c1)))
			r += int(math.Round(t * float64(r2-r1)))
		}
		s.screen.SetContent(c, r, ch, nil, style)
	}
}

// cell maps a display point to a column and row. Row 0 is the top line.
func (s *Screen) cell(p ticklabel.Point) (int, int) {
	_, rows := s.screen.Size()
	col := int(math.Floor(p.X / s.opts.CellWidth))
	row := rows - 1 - int(math.Floor(p.Y/s.opts.CellHeight))
	return col, row
}

func (s *Screen) drawString(x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ ticklabel.Renderer = (*Screen)(nil)
