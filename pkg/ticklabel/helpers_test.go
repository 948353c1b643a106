package ticklabel

// fixedMeasurer measures every rune as 0.6 em wide and one em tall, with one
// point equal to one pixel.
type fixedMeasurer struct {
	drawn []Label
}

func (m *fixedMeasurer) PointsToPixels(pt float64) float64 { return pt }

func (m *fixedMeasurer) Measure(text string, size float64) Size {
	return Size{W: float64(len([]rune(text))) * size * 0.6, H: size}
}

func (m *fixedMeasurer) BoundingBox(l Label) Rect {
	return TextBox(m.Measure(l.Text, l.Size), l)
}

func (m *fixedMeasurer) DrawText(l Label) {
	m.drawn = append(m.drawn, l)
}
