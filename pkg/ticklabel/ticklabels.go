package ticklabel

import "github.com/ha1tch/ticklabel-toolkit/internal/monitoring"

// DefaultFontSize is the label font size in points.
const DefaultFontSize = 10.0

// Options controls how labels are laid out.
type Options struct {
	Frame    FrameKind
	FontSize float64 // points
	Rotation float64 // degrees, applied to every label
	Pad      float64 // arbitrary frames only, in line heights
}

// DefaultOptions returns the options for a rectangular frame.
func DefaultOptions() Options {
	return Options{
		Frame:    FrameRectangular,
		FontSize: DefaultFontSize,
		Pad:      DefaultPad,
	}
}

// Placement is the decision taken for one tick label.
type Placement struct {
	Axis     AxisID
	Index    int // position on the axis after sorting
	Tick     Tick
	Label    Label
	Box      Rect
	Accepted bool
}

// Plan sorts and simplifies the store, then lays out every visible label
// and runs it through an overlap filter seeded with reserved. Axes are
// visited in VisibleAxes order and ticks in axis order, so an earlier label
// always wins over a later one it overlaps. Labels with empty text are
// skipped. Plan draws nothing.
func Plan(s *Store, m Measurer, opts Options, reserved []Rect) []Placement {
	s.SimplifyLabels()

	lineHeight := m.PointsToPixels(opts.FontSize)
	filter := NewOverlapFilter(reserved)

	var out []Placement
	for _, axis := range s.VisibleAxes() {
		for i, t := range s.ticks[axis] {
			if t.Text == "" {
				continue
			}

			var size Size
			if opts.Frame != FrameRectangular {
				size = m.Measure(t.Text, opts.FontSize)
			}
			a := ComputeAnchor(opts.Frame, t.Angle, t.Pixel, size, lineHeight, opts.Pad)

			l := Label{
				Text:     t.Text,
				Pos:      a.Pos,
				HAlign:   a.HAlign,
				VAlign:   a.VAlign,
				Size:     opts.FontSize,
				Rotation: opts.Rotation,
			}
			box := m.BoundingBox(l)

			out = append(out, Placement{
				Axis:     axis,
				Index:    i,
				Tick:     t,
				Label:    l,
				Box:      box,
				Accepted: filter.Accept(box),
			})
		}
	}
	return out
}

// TickLabels draws the tick labels of a set of axes onto a Renderer and
// remembers the boxes of every label it drew.
// Fill the embedded Store, call Draw, then Clear before the next pass.
type TickLabels struct {
	*Store
	Options

	// Debug logs every rejected label.
	Debug bool

	accepted []Rect
}

// NewTickLabels creates TickLabels for the given frame with default options.
func NewTickLabels(frame FrameKind) *TickLabels {
	opts := DefaultOptions()
	opts.Frame = frame
	return &TickLabels{
		Store:   NewStore(),
		Options: opts,
	}
}

// Draw lays out the labels, draws the ones that do not collide with reserved
// or with each other, and returns the boxes drawn in this pass.
func (tl *TickLabels) Draw(r Renderer, reserved []Rect) []Rect {
	var drawn []Rect
	for _, p := range Plan(tl.Store, r, tl.Options, reserved) {
		if !p.Accepted {
			if tl.Debug {
				monitoring.Logf("ticklabel: skipping %q on axis %s: overlaps an earlier label", p.Label.Text, p.Axis)
			}
			continue
		}
		r.DrawText(p.Label)
		drawn = append(drawn, p.Box)
	}
	tl.accepted = append(tl.accepted, drawn...)
	return drawn
}

// AcceptedBoxes returns the boxes of every label drawn since the last
// ResetAcceptedBoxes. The list grows across passes.
func (tl *TickLabels) AcceptedBoxes() []Rect {
	out := make([]Rect, len(tl.accepted))
	copy(out, tl.accepted)
	return out
}

// ResetAcceptedBoxes forgets the boxes of previous passes.
func (tl *TickLabels) ResetAcceptedBoxes() {
	tl.accepted = nil
}

var _ Drawable = (*TickLabels)(nil)
