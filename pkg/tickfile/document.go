// Tick-set documents: the candidate ticks of every axis plus the frame they
// belong to, stored as JSON or YAML.

package tickfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

// Document is a set of candidate ticks for one drawing pass.
type Document struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Frame Frame  `json:"frame" yaml:"frame"`
	Axes  []Axis `json:"axes" yaml:"axes"`
}

// Frame describes the boundary of the plotted region.
type Frame struct {
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"` // "rectangular" or "arbitrary"
	// Outline is a closed polygon in display coordinates, drawn by the CLI.
	Outline [][]float64 `json:"outline,omitempty" yaml:"outline,omitempty"`
}

// Axis holds the ticks of one axis.
type Axis struct {
	ID    string     `json:"id" yaml:"id"`
	Ticks []TickSpec `json:"ticks" yaml:"ticks"`
}

// TickSpec is a tick as written in a document.
type TickSpec struct {
	World        []float64 `json:"world,omitempty" yaml:"world,omitempty"`
	Pixel        []float64 `json:"pixel" yaml:"pixel"` // [x, y]
	Angle        float64   `json:"angle" yaml:"angle"`
	Text         string    `json:"text" yaml:"text"`
	Displacement float64   `json:"displacement" yaml:"displacement"`
}

// FrameKind returns the parsed frame kind.
func (d *Document) FrameKind() (ticklabel.FrameKind, error) {
	return ticklabel.ParseFrameKind(d.Frame.Kind)
}

// OutlinePoints returns the frame outline as points.
func (d *Document) OutlinePoints() []ticklabel.Point {
	pts := make([]ticklabel.Point, 0, len(d.Frame.Outline))
	for _, p := range d.Frame.Outline {
		if len(p) == 2 {
			pts = append(pts, ticklabel.Point{X: p[0], Y: p[1]})
		}
	}
	return pts
}

// Validate checks that the document can be loaded into a store.
func (d *Document) Validate() error {
	if _, err := d.FrameKind(); err != nil {
		return err
	}
	for i, p := range d.Frame.Outline {
		if len(p) != 2 {
			return fmt.Errorf("frame outline point %d: want 2 coordinates, got %d", i, len(p))
		}
	}
	seen := make(map[string]bool)
	for _, a := range d.Axes {
		if a.ID == "" {
			return fmt.Errorf("axis with empty id")
		}
		if seen[a.ID] {
			return fmt.Errorf("axis %q listed twice", a.ID)
		}
		seen[a.ID] = true
		for i, t := range a.Ticks {
			if len(t.Pixel) != 2 {
				return fmt.Errorf("axis %q tick %d: pixel needs 2 coordinates, got %d", a.ID, i, len(t.Pixel))
			}
		}
	}
	return nil
}

// Fill adds every tick of the document to s, in document order.
func (d *Document) Fill(s *ticklabel.Store) {
	for _, a := range d.Axes {
		for _, t := range a.Ticks {
			var px ticklabel.Point
			if len(t.Pixel) == 2 {
				px = ticklabel.Point{X: t.Pixel[0], Y: t.Pixel[1]}
			}
			s.Add(ticklabel.AxisID(a.ID), t.World, px, t.Angle, t.Text, t.Displacement)
		}
	}
}

// TickCount returns the number of ticks over all axes.
func (d *Document) TickCount() int {
	n := 0
	for _, a := range d.Axes {
		n += len(a.Ticks)
	}
	return n
}

// ParseJSON parses a Document from JSON.
func ParseJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, d.Validate()
}

// ParseYAML parses a Document from YAML.
func ParseYAML(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, d.Validate()
}

// ToJSON converts a Document to JSON.
func ToJSON(d *Document, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

// ToYAML converts a Document to YAML.
func ToYAML(d *Document) ([]byte, error) {
	return yaml.Marshal(d)
}

// Load reads a Document, choosing the format from the file extension.
// Anything that is not .yaml or .yml is read as JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tick file: %w", err)
	}

	var d *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err = ParseYAML(data)
	default:
		d, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return d, nil
}
