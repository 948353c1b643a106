package tickfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

// RenderConfig controls how a Document is rendered.
type RenderConfig struct {
	Backend     string  `yaml:"backend"`     // "png", "svg" or "plot"
	Width       int     `yaml:"width"`       // canvas width in pixels
	Height      int     `yaml:"height"`      // canvas height in pixels
	DPI         float64 `yaml:"dpi"`         // converts font points to pixels
	Supersample int     `yaml:"supersample"` // raster oversampling factor (png only)
	FontSize    float64 `yaml:"font_size"`   // label font size in points
	Rotation    float64 `yaml:"rotation"`    // label rotation in degrees
	Pad         float64 `yaml:"pad"`         // clearance for arbitrary frames, in line heights
	Frame       string  `yaml:"frame"`       // overrides the document's frame kind when set
	TickLength  float64 `yaml:"tick_length"` // tick mark length in pixels, 0 hides marks
	// VisibleAxes is either "all" or a list of axis ids.
	VisibleAxes AxisList `yaml:"visible_axes"`
	// Reserved regions labels must avoid, as [x0, y0, x1, y1].
	Reserved [][]float64 `yaml:"reserved"`
}

// AxisList is a visibility filter as written in YAML: the scalar "all" or a
// sequence of axis ids.
type AxisList struct {
	All bool
	IDs []string
}

// UnmarshalYAML accepts "all", a single id, or a sequence of ids.
func (a *AxisList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if strings.EqualFold(node.Value, "all") || node.Value == "" {
			*a = AxisList{All: true}
			return nil
		}
		*a = AxisList{IDs: []string{node.Value}}
		return nil
	case yaml.SequenceNode:
		var ids []string
		if err := node.Decode(&ids); err != nil {
			return err
		}
		*a = AxisList{IDs: ids}
		return nil
	}
	return fmt.Errorf("line %d: visible_axes must be \"all\" or a list of axis ids", node.Line)
}

// MarshalYAML writes the list back in the form UnmarshalYAML reads.
func (a AxisList) MarshalYAML() (interface{}, error) {
	if a.All {
		return "all", nil
	}
	return a.IDs, nil
}

// Visibility converts the list to a ticklabel visibility filter.
func (a AxisList) Visibility() ticklabel.Visibility {
	if a.All {
		return ticklabel.VisibleAll()
	}
	ids := make([]ticklabel.AxisID, len(a.IDs))
	for i, id := range a.IDs {
		ids[i] = ticklabel.AxisID(id)
	}
	return ticklabel.VisibleOnly(ids...)
}

// DefaultRenderConfig returns the defaults applied to missing fields.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Backend:     "png",
		Width:       800,
		Height:      600,
		DPI:         72,
		Supersample: 2,
		FontSize:    ticklabel.DefaultFontSize,
		Pad:         ticklabel.DefaultPad,
		TickLength:  6,
		VisibleAxes: AxisList{All: true},
	}
}

// ParseRenderConfig parses YAML over the defaults. Fields absent from data
// keep their default values.
func ParseRenderConfig(data []byte) (RenderConfig, error) {
	cfg := DefaultRenderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, err
	}
	return cfg, cfg.Validate()
}

// LoadRenderConfig reads a YAML render configuration. An empty path returns
// the defaults.
func LoadRenderConfig(path string) (RenderConfig, error) {
	if path == "" {
		return DefaultRenderConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := ParseRenderConfig(data)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c RenderConfig) Validate() error {
	switch c.Backend {
	case "png", "svg", "plot":
	default:
		return fmt.Errorf("unknown backend %q (want png, svg or plot)", c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.DPI)
	}
	if c.Supersample < 1 {
		return fmt.Errorf("supersample must be at least 1, got %d", c.Supersample)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", c.FontSize)
	}
	if c.Pad < 0 {
		return fmt.Errorf("pad must not be negative, got %v", c.Pad)
	}
	if c.Frame != "" {
		if _, err := ticklabel.ParseFrameKind(c.Frame); err != nil {
			return err
		}
	}
	for i, r := range c.Reserved {
		if len(r) != 4 {
			return fmt.Errorf("reserved region %d: want [x0, y0, x1, y1], got %d values", i, len(r))
		}
	}
	return nil
}

// ReservedRects returns the reserved regions as rectangles.
func (c RenderConfig) ReservedRects() []ticklabel.Rect {
	out := make([]ticklabel.Rect, 0, len(c.Reserved))
	for _, r := range c.Reserved {
		if len(r) == 4 {
			out = append(out, ticklabel.RectFromCorners(r[0], r[1], r[2], r[3]))
		}
	}
	return out
}

// Options builds layout options, taking the frame kind from the config when
// set and from fallback otherwise.
func (c RenderConfig) Options(fallback ticklabel.FrameKind) ticklabel.Options {
	frame := fallback
	if c.Frame != "" {
		if k, err := ticklabel.ParseFrameKind(c.Frame); err == nil {
			frame = k
		}
	}
	return ticklabel.Options{
		Frame:    frame,
		FontSize: c.FontSize,
		Rotation: c.Rotation,
		Pad:      c.Pad,
	}
}
