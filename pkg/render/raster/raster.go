// Native raster text backend for tick labels.
// Draws with the Go Regular font onto an oversampled RGBA canvas.

package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/ticklabel-toolkit/internal/monitoring"
	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

// Options configures a Canvas.
type Options struct {
	Width       int     // output width in pixels
	Height      int     // output height in pixels
	DPI         float64 // resolution used to convert points to pixels
	Supersample int     // render at this multiple of the output size
	LineWidth   float64 // stroke width in output pixels
	Background  color.Color
	Foreground  color.Color
}

// DefaultOptions returns sensible defaults for raster rendering.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		DPI:         72,
		Supersample: 2,
		LineWidth:   1,
		Background:  color.White,
		Foreground:  color.RGBA{51, 51, 51, 255}, // #333
	}
}

// Canvas is a ticklabel.Renderer backed by an image.RGBA.
// Coordinates passed in are display coordinates (y up) in output pixels.
type Canvas struct {
	img    *image.RGBA
	scale  float64 // supersample factor
	width  int
	height int
	dpi    float64
	line   float64
	fg     color.Color

	font  *opentype.Font
	faces map[float64]font.Face // keyed by point size
}

// New creates a Canvas filled with the background color.
func New(opts Options) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.DPI <= 0 {
		opts.DPI = 72
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parsing font: %w", err)
	}

	s := opts.Supersample
	img := image.NewRGBA(image.Rect(0, 0, opts.Width*s, opts.Height*s))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	return &Canvas{
		img:    img,
		scale:  float64(s),
		width:  opts.Width,
		height: opts.Height,
		dpi:    opts.DPI,
		line:   opts.LineWidth * float64(s),
		fg:     opts.Foreground,
		font:   fnt,
		faces:  make(map[float64]font.Face),
	}, nil
}

// face returns the font face for a point size at the oversampled resolution.
func (c *Canvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     c.dpi * c.scale,
		Hinting: font.HintingNone, // No hinting - we supersample instead
	})
	f = usableFace(f, err, size)
	c.faces[size] = f
	return f
}

// usableFace returns f, or the fixed 7x13 bitmap face when the opentype face
// could not be built.
func usableFace(f font.Face, err error, size float64) font.Face {
	if err == nil && f != nil {
		return f
	}
	monitoring.Logf("raster: no %vpt face, using fixed 7x13: %v", size, err)
	return basicfont.Face7x13
}

// Close releases the cached font faces.
func (c *Canvas) Close() error {
	for size, f := range c.faces {
		f.Close()
		delete(c.faces, size)
	}
	return nil
}

// PointsToPixels converts a font size in points to output pixels.
func (c *Canvas) PointsToPixels(pt float64) float64 {
	return pt * c.dpi / 72
}

// Measure returns the advance width and line height of text in output pixels.
func (c *Canvas) Measure(text string, size float64) ticklabel.Size {
	face := c.face(size)
	m := face.Metrics()
	w := fixedToFloat(font.MeasureString(face, text))
	h := fixedToFloat(m.Ascent + m.Descent)
	return ticklabel.Size{W: w / c.scale, H: h / c.scale}
}

// BoundingBox returns the axis-aligned envelope of a label.
func (c *Canvas) BoundingBox(l ticklabel.Label) ticklabel.Rect {
	return ticklabel.TextBox(c.Measure(l.Text, l.Size), l)
}

// DrawText draws a label. Rotated labels are rendered upright off-screen and
// composited with an affine transform.
func (c *Canvas) DrawText(l ticklabel.Label) {
	if l.Text == "" {
		return
	}
	box := c.BoundingBox(l)
	face := c.face(l.Size)

	if math.Mod(l.Rotation, 360) == 0 {
		top := c.toDevice(box.Max())
		left := c.toDevice(box.Min())
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(c.fg),
			Face: face,
			Dot: fixed.Point26_6{
				X: floatToFixed(left.X),
				Y: floatToFixed(top.Y) + face.Metrics().Ascent,
			},
		}
		d.DrawString(l.Text)
		return
	}

	// Upright text on a transparent tile.
	m := face.Metrics()
	tw := font.MeasureString(face, l.Text).Ceil()
	th := (m.Ascent + m.Descent).Ceil()
	if tw <= 0 || th <= 0 {
		return
	}
	tile := image.NewRGBA(image.Rect(0, 0, tw, th))
	d := &font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(c.fg),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(l.Text)

	// Rotate about the tile center onto the box center. Device y points
	// down, so a counter-clockwise rotation flips the sign of sin.
	rad := l.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	sx, sy := float64(tw)/2, float64(th)/2
	dst := c.toDevice(box.Center())
	aff := f64.Aff3{
		cos, sin, dst.X - cos*sx - sin*sy,
		-sin, cos, dst.Y + sin*sx - cos*sy,
	}
	draw.BiLinear.Transform(c.img, aff, tile, tile.Bounds(), draw.Over, nil)
}

// DrawLine draws a line between two display points.
func (c *Canvas) DrawLine(p1, p2 ticklabel.Point) {
	a, b := c.toDevice(p1), c.toDevice(p2)
	x1, y1, x2, y2 := a.X, a.Y, b.X, b.Y

	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}

	halfThick := c.line / 2

	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				c.img.Set(int(x1+tx), int(y1+ty), c.fg)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t

		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			c.img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c.fg)
		}
	}
}

// DrawPolygon draws a closed outline.
func (c *Canvas) DrawPolygon(pts []ticklabel.Point) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		c.DrawLine(pts[i], pts[(i+1)%len(pts)])
	}
}

// Image returns the canvas at its output size.
func (c *Canvas) Image() *image.RGBA {
	if c.scale == 1 {
		return c.img
	}
	out := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)
	return out
}

// WritePNG encodes the canvas at its output size.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// toDevice maps a display point to oversampled device pixels (y down).
func (c *Canvas) toDevice(p ticklabel.Point) ticklabel.Point {
	return ticklabel.Point{
		X: p.X * c.scale,
		Y: (float64(c.height) - p.Y) * c.scale,
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

var _ ticklabel.Renderer = (*Canvas)(nil)
