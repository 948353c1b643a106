package vector

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

func TestMeasure(t *testing.T) {
	s := New(Options{DPI: 144})

	got := s.Measure("12°", 10)
	// 3 runes × 20px × 0.6, height 20px × 1.2
	if math.Abs(got.W-36) > 1e-9 || math.Abs(got.H-24) > 1e-9 {
		t.Errorf("Measure = %+v, want {36 24}", got)
	}
}

func TestDrawTextFlipsAndEscapes(t *testing.T) {
	s := New(Options{Width: 200, Height: 100})
	s.DrawText(ticklabel.Label{
		Text: "<5>",
		Pos:  ticklabel.Point{X: 50, Y: 30},
		Size: 10,
	})

	out := s.String()
	if !strings.Contains(out, "&lt;5&gt;") {
		t.Errorf("label text not escaped:\n%s", out)
	}
	// Centered label at display y=30 sits at SVG y=70.
	if !strings.Contains(out, `x="50.0" y="70.0"`) {
		t.Errorf("label not flipped into SVG coordinates:\n%s", out)
	}
	if strings.Contains(out, "rotate(") {
		t.Error("unrotated label should not carry a transform")
	}
}

func TestDrawRotatedText(t *testing.T) {
	s := New(Options{Width: 100, Height: 100})
	s.DrawText(ticklabel.Label{Text: "x", Pos: ticklabel.Point{X: 10, Y: 10}, Size: 10, Rotation: 30})

	if !strings.Contains(s.String(), "rotate(-30.0") {
		t.Errorf("expected a clockwise SVG rotation:\n%s", s.String())
	}
}

func TestDrawPolygonAndLine(t *testing.T) {
	s := New(Options{Width: 100, Height: 100})
	s.DrawPolygon([]ticklabel.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100}})
	s.DrawLine(ticklabel.Point{X: 10, Y: 0}, ticklabel.Point{X: 10, Y: 5})

	out := s.String()
	if !strings.Contains(out, `points="0.0,100.0 100.0,100.0 50.0,0.0"`) {
		t.Errorf("unexpected polygon:\n%s", out)
	}
	if !strings.Contains(out, `<line x1="10.0" y1="100.0" x2="10.0" y2="95.0"`) {
		t.Errorf("unexpected line:\n%s", out)
	}
}

func TestTickLabelsOnSVG(t *testing.T) {
	s := New(Options{Width: 400, Height: 300})
	tl := ticklabel.NewTickLabels(ticklabel.FrameArbitrary)
	tl.Add("ra", nil, ticklabel.Point{X: 100, Y: 20}, 0, "10h", 1)
	tl.Add("ra", nil, ticklabel.Point{X: 101, Y: 20}, 0, "11h", 2)
	tl.Add("ra", nil, ticklabel.Point{X: 300, Y: 20}, 0, "12h", 3)

	drawn := tl.Draw(s, nil)
	if len(drawn) != 2 {
		t.Fatalf("expected 2 labels drawn, got %d", len(drawn))
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "<text"); got != 2 {
		t.Errorf("expected 2 text elements, got %d", got)
	}
}
