package ticklabel

import "sort"

// AxisID names a coordinate axis along which ticks are drawn.
type AxisID string

// Tick is a single candidate tick label.
type Tick struct {
	World        []float64 // world coordinate (scalar or tuple), display only
	Pixel        Point     // where the tick sits on screen
	Angle        float64   // tangent direction of the axis at the tick, degrees
	Text         string    // label text; rewritten by Simplify
	Displacement float64   // position along the axis, used for ordering
}

// Visibility selects which axes are drawn. The zero value selects all axes.
type Visibility struct {
	axes     []AxisID
	explicit bool
}

// VisibleAll selects every axis present in the store.
func VisibleAll() Visibility {
	return Visibility{}
}

// VisibleOnly selects the given axes, in the given order.
func VisibleOnly(axes ...AxisID) Visibility {
	v := Visibility{explicit: true, axes: make([]AxisID, len(axes))}
	copy(v.axes, axes)
	return v
}

// All reports whether every axis is selected.
func (v Visibility) All() bool {
	return !v.explicit
}

// Axes returns the explicit axis list, or nil when all axes are selected.
func (v Visibility) Axes() []AxisID {
	if !v.explicit {
		return nil
	}
	out := make([]AxisID, len(v.axes))
	copy(out, v.axes)
	return out
}

// Store holds the candidate ticks for each axis of one layout pass.
// The zero value is an empty store with every axis visible.
// A Store is not safe for concurrent use.
type Store struct {
	ticks   map[AxisID][]Tick
	order   []AxisID // first-insertion order of axes
	visible Visibility
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear removes every tick from every axis. The visibility filter is kept.
func (s *Store) Clear() {
	s.ticks = make(map[AxisID][]Tick)
	s.order = nil
}

// Add appends a tick to an axis, creating the axis on first use.
func (s *Store) Add(axis AxisID, world []float64, pixel Point, angle float64, text string, displacement float64) {
	s.AddTick(axis, Tick{
		World:        world,
		Pixel:        pixel,
		Angle:        angle,
		Text:         text,
		Displacement: displacement,
	})
}

// AddTick appends a prepared tick to an axis.
func (s *Store) AddTick(axis AxisID, t Tick) {
	if s.ticks == nil {
		s.ticks = make(map[AxisID][]Tick)
	}
	if _, ok := s.ticks[axis]; !ok {
		s.order = append(s.order, axis)
	}
	s.ticks[axis] = append(s.ticks[axis], t)
}

// Sort orders the ticks of every axis by displacement. Ticks with equal
// displacement keep their insertion order.
func (s *Store) Sort() {
	for _, axis := range s.order {
		ticks := s.ticks[axis]
		sort.SliceStable(ticks, func(i, j int) bool {
			return ticks[i].Displacement < ticks[j].Displacement
		})
	}
}

// Axes returns every axis in the order it was first added.
func (s *Store) Axes() []AxisID {
	out := make([]AxisID, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether the axis has been added since the last Clear.
func (s *Store) Has(axis AxisID) bool {
	_, ok := s.ticks[axis]
	return ok
}

// Len returns the number of ticks on an axis.
func (s *Store) Len(axis AxisID) int {
	return len(s.ticks[axis])
}

// Ticks returns a copy of the ticks of an axis in their current order.
func (s *Store) Ticks(axis AxisID) []Tick {
	ticks := s.ticks[axis]
	out := make([]Tick, len(ticks))
	copy(out, ticks)
	return out
}

// Tick returns the i-th tick of an axis.
func (s *Store) Tick(axis AxisID, i int) Tick {
	return s.ticks[axis][i]
}

// Texts returns the label texts of an axis in their current order.
func (s *Store) Texts(axis AxisID) []string {
	ticks := s.ticks[axis]
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = t.Text
	}
	return out
}

// SetVisibleAxes replaces the visibility filter.
func (s *Store) SetVisibleAxes(v Visibility) {
	s.visible = v
}

// VisibleAxes returns the axes to draw: the explicit filter order restricted
// to axes present in the store, or every axis in insertion order.
func (s *Store) VisibleAxes() []AxisID {
	if s.visible.All() {
		return s.Axes()
	}
	var out []AxisID
	for _, axis := range s.visible.axes {
		if s.Has(axis) {
			out = append(out, axis)
		}
	}
	return out
}
