package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/ticklabel-toolkit/internal/monitoring"
	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

func newTestCanvas(t *testing.T, opts Options) *Canvas {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewRejectsEmptyCanvas(t *testing.T) {
	_, err := New(Options{Width: 0, Height: 10})
	assert.Error(t, err)
}

func TestPointsToPixels(t *testing.T) {
	opts := DefaultOptions()
	opts.DPI = 144
	c := newTestCanvas(t, opts)
	assert.InDelta(t, 20.0, c.PointsToPixels(10), 1e-9)
}

func TestMeasure(t *testing.T) {
	c := newTestCanvas(t, DefaultOptions())

	short := c.Measure("1", 10)
	long := c.Measure("12345", 10)
	assert.Greater(t, short.W, 0.0)
	assert.Greater(t, long.W, short.W*3)
	assert.InDelta(t, short.H, long.H, 1e-9, "line height does not depend on text")

	big := c.Measure("12345", 20)
	assert.InDelta(t, long.W*2, big.W, 1.0)
}

func TestMeasureIndependentOfSupersample(t *testing.T) {
	a := DefaultOptions()
	a.Supersample = 1
	b := DefaultOptions()
	b.Supersample = 4

	wa := newTestCanvas(t, a).Measure("45°30′", 12).W
	wb := newTestCanvas(t, b).Measure("45°30′", 12).W
	assert.InDelta(t, wa, wb, 1.0)
}

func TestBoundingBoxRotation(t *testing.T) {
	c := newTestCanvas(t, DefaultOptions())
	l := ticklabel.Label{Text: "10h00m", Pos: ticklabel.Point{X: 100, Y: 100}, Size: 10}

	flat := c.BoundingBox(l)
	l.Rotation = 90
	up := c.BoundingBox(l)

	assert.InDelta(t, flat.W, up.H, 1e-6)
	assert.InDelta(t, flat.H, up.W, 1e-6)
}

func TestDrawTextMarksPixelsInsideBox(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 200, 100
	opts.Supersample = 1
	c := newTestCanvas(t, opts)

	l := ticklabel.Label{Text: "888", Pos: ticklabel.Point{X: 100, Y: 50}, Size: 20}
	c.DrawText(l)
	box := c.BoundingBox(l)

	img := c.Image()
	inside, outside := 0, 0
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{255, 255, 255, 255}) {
				continue
			}
			// Display y is flipped relative to image rows.
			dx, dy := float64(x)+0.5, float64(opts.Height-y)-0.5
			if math.Abs(dx-box.X) <= box.W/2+2 && math.Abs(dy-box.Y) <= box.H/2+2 {
				inside++
			} else {
				outside++
			}
		}
	}
	assert.Greater(t, inside, 0, "text should be drawn inside its box")
	assert.Equal(t, 0, outside, "text should not spill outside its box")
}

func TestDrawRotatedText(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 100, 100
	opts.Supersample = 1
	c := newTestCanvas(t, opts)

	c.DrawText(ticklabel.Label{Text: "77", Pos: ticklabel.Point{X: 50, Y: 50}, Size: 14, Rotation: 90})

	img := c.Image()
	marked := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				marked++
			}
		}
	}
	assert.Greater(t, marked, 0)
}

func TestWritePNG(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 120, 80
	c := newTestCanvas(t, opts)
	c.DrawPolygon([]ticklabel.Point{{X: 10, Y: 10}, {X: 110, Y: 10}, {X: 110, Y: 70}, {X: 10, Y: 70}})

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestTickLabelsOnCanvas(t *testing.T) {
	c := newTestCanvas(t, DefaultOptions())

	tl := ticklabel.NewTickLabels(ticklabel.FrameRectangular)
	for i, text := range []string{"10.0", "10.1", "10.2", "10.3"} {
		// Ticks 3 pixels apart along the bottom edge: most labels collide.
		tl.Add("x", nil, ticklabel.Point{X: 100 + 3*float64(i), Y: 50}, 90, text, float64(i))
	}
	drawn := tl.Draw(c, nil)

	require.NotEmpty(t, drawn)
	assert.Less(t, len(drawn), 4)
	for i := range drawn {
		for j := i + 1; j < len(drawn); j++ {
			assert.False(t, drawn[i].Overlaps(drawn[j]), "accepted boxes %d and %d overlap", i, j)
		}
	}
}

func TestFailedFaceFallsBackToBitmapFont(t *testing.T) {
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	f := usableFace(nil, errors.New("bad size"), 10)
	require.NotNil(t, f)
	assert.Greater(t, f.Metrics().Height.Ceil(), 0)
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "bad size")

	// A cached fallback face still measures and draws.
	c := newTestCanvas(t, Options{Width: 100, Height: 50, Supersample: 1})
	c.faces[10] = f
	size := c.Measure("42", 10)
	assert.InDelta(t, 14.0, size.W, 1e-9)
	assert.NotPanics(t, func() {
		c.DrawText(ticklabel.Label{Text: "42", Pos: ticklabel.Point{X: 50, Y: 25}, Size: 10})
	})
}
