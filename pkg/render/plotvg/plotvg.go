// Package plotvg is a tick-label backend on top of the gonum/plot vector
// graphics stack, so labels can be measured and drawn with the same fonts and
// text handler as the rest of a gonum plot.
package plotvg

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

// Options configures a Canvas.
type Options struct {
	Width     int     // image width in pixels
	Height    int     // image height in pixels
	DPI       int     // image resolution
	Font      font.Font
	Color     color.Color
	LineWidth vg.Length
}

// DefaultOptions returns options using the plot default font.
func DefaultOptions() Options {
	return Options{
		Width:     800,
		Height:    600,
		DPI:       96,
		Font:      plot.DefaultFont,
		Color:     color.Black,
		LineWidth: vg.Points(1),
	}
}

// Canvas draws labels on a vgimg canvas. Display coordinates are image
// pixels with the origin at the bottom left, which matches vg's own
// orientation.
type Canvas struct {
	img     *vgimg.Canvas
	dc      draw.Canvas
	opts    Options
	handler text.Handler
}

// New creates a Canvas with a white background.
func New(opts Options) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("plotvg: invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.DPI <= 0 {
		opts.DPI = vgimg.DefaultDPI
	}
	if opts.Font.Typeface == "" {
		opts.Font = plot.DefaultFont
	}
	if opts.Color == nil {
		opts.Color = color.Black
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = vg.Points(1)
	}

	c := &Canvas{opts: opts, handler: plot.DefaultTextHandler}
	c.img = vgimg.NewWith(
		vgimg.UseWH(c.toLength(float64(opts.Width)), c.toLength(float64(opts.Height))),
		vgimg.UseDPI(opts.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	c.dc = draw.New(c.img)
	return c, nil
}

// style returns the text style for a point size and rotation in degrees.
func (c *Canvas) style(size, rotation float64) text.Style {
	f := c.opts.Font
	f.Size = vg.Points(size)
	return text.Style{
		Color:    c.opts.Color,
		Font:     f,
		Rotation: rotation * math.Pi / 180,
		XAlign:   text.XCenter,
		YAlign:   text.YCenter,
		Handler:  c.handler,
	}
}

// PointsToPixels converts a font size in points to image pixels.
func (c *Canvas) PointsToPixels(pt float64) float64 {
	return pt * float64(c.opts.DPI) / 72
}

// Measure returns the unrotated extent of text in pixels.
func (c *Canvas) Measure(txt string, size float64) ticklabel.Size {
	sty := c.style(size, 0)
	return ticklabel.Size{
		W: c.toPixels(sty.Width(txt)),
		H: c.toPixels(sty.Height(txt)),
	}
}

// BoundingBox returns the axis-aligned envelope of a label.
func (c *Canvas) BoundingBox(l ticklabel.Label) ticklabel.Rect {
	return ticklabel.TextBox(c.Measure(l.Text, l.Size), l)
}

// DrawText draws a label centered on its box.
func (c *Canvas) DrawText(l ticklabel.Label) {
	if l.Text == "" {
		return
	}
	box := c.BoundingBox(l)
	c.dc.FillText(c.style(l.Size, l.Rotation), c.toPoint(box.Center()), l.Text)
}

// DrawLine strokes a line between two display points.
func (c *Canvas) DrawLine(p1, p2 ticklabel.Point) {
	c.dc.StrokeLines(c.lineStyle(), []vg.Point{c.toPoint(p1), c.toPoint(p2)})
}

// DrawPolygon strokes a closed outline.
func (c *Canvas) DrawPolygon(pts []ticklabel.Point) {
	if len(pts) < 2 {
		return
	}
	line := make([]vg.Point, 0, len(pts)+1)
	for _, p := range pts {
		line = append(line, c.toPoint(p))
	}
	line = append(line, line[0])
	c.dc.StrokeLines(c.lineStyle(), line)
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: c.img}.WriteTo(w)
	return err
}

func (c *Canvas) lineStyle() draw.LineStyle {
	return draw.LineStyle{Color: c.opts.Color, Width: c.opts.LineWidth}
}

func (c *Canvas) toLength(px float64) vg.Length {
	return vg.Length(px * 72 / float64(c.opts.DPI))
}

func (c *Canvas) toPixels(l vg.Length) float64 {
	return float64(l) * float64(c.opts.DPI) / 72
}

func (c *Canvas) toPoint(p ticklabel.Point) vg.Point {
	return vg.Point{X: c.toLength(p.X), Y: c.toLength(p.Y)}
}

var _ ticklabel.Renderer = (*Canvas)(nil)
