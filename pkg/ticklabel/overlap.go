package ticklabel

// OverlapFilter accepts label boxes that do not overlap anything accepted
// before them in the same pass, nor any reserved region.
type OverlapFilter struct {
	boxes []Rect
}

// NewOverlapFilter creates an OverlapFilter seeded with reserved regions.
func NewOverlapFilter(reserved []Rect) *OverlapFilter {
	boxes := make([]Rect, len(reserved))
	copy(boxes, reserved)
	return &OverlapFilter{boxes: boxes}
}

// Collides reports whether box overlaps any box in the running list.
func (f *OverlapFilter) Collides(box Rect) bool {
	for _, b := range f.boxes {
		if RectOverlap(box, b) > 0 {
			return true
		}
	}
	return false
}

// Accept records box and returns true if it collides with nothing.
// A rejected box is not recorded.
func (f *OverlapFilter) Accept(box Rect) bool {
	if f.Collides(box) {
		return false
	}
	f.boxes = append(f.boxes, box)
	return true
}

// Boxes returns the running list: reserved regions followed by every
// accepted box in acceptance order.
func (f *OverlapFilter) Boxes() []Rect {
	out := make([]Rect, len(f.boxes))
	copy(out, f.boxes)
	return out
}
