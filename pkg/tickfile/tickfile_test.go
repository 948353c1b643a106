package tickfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

const sampleJSON = `{
  "name": "galactic",
  "frame": {"kind": "arbitrary", "outline": [[0,0],[100,0],[100,100],[0,100]]},
  "axes": [
    {"id": "glon", "ticks": [
      {"world": [10], "pixel": [80, 0], "angle": 0, "text": "10°", "displacement": 2},
      {"world": [20], "pixel": [40, 0], "angle": 0, "text": "20°", "displacement": 1}
    ]},
    {"id": "glat", "ticks": [
      {"world": [-5], "pixel": [0, 30], "angle": 90, "text": "-5°", "displacement": 0}
    ]}
  ]
}`

const sampleYAML = `
name: galactic
frame:
  kind: arbitrary
axes:
  - id: glon
    ticks:
      - {world: [10], pixel: [80, 0], angle: 0, text: "10°", displacement: 2}
      - {world: [20], pixel: [40, 0], angle: 0, text: "20°", displacement: 1}
  - id: glat
    ticks:
      - {world: [-5], pixel: [0, 30], angle: 90, text: "-5°", displacement: 0}
`

func TestParseJSON(t *testing.T) {
	d, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, "galactic", d.Name)
	assert.Equal(t, 3, d.TickCount())
	kind, err := d.FrameKind()
	require.NoError(t, err)
	assert.Equal(t, ticklabel.FrameArbitrary, kind)
	assert.Len(t, d.OutlinePoints(), 4)
}

func TestParseYAMLMatchesJSON(t *testing.T) {
	dj, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)
	dy, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, dj.Axes, dy.Axes)
	assert.Equal(t, dj.Frame.Kind, dy.Frame.Kind)
}

func TestDocumentFill(t *testing.T) {
	d, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	s := ticklabel.NewStore()
	d.Fill(s)

	assert.Equal(t, []ticklabel.AxisID{"glon", "glat"}, s.Axes())
	assert.Equal(t, 2, s.Len("glon"))
	tk := s.Tick("glon", 1)
	assert.Equal(t, ticklabel.Point{X: 40, Y: 0}, tk.Pixel)
	assert.Equal(t, "20°", tk.Text)
	assert.Equal(t, []float64{20}, tk.World)
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad pixel", `{"axes":[{"id":"x","ticks":[{"pixel":[1],"text":"a"}]}]}`},
		{"empty id", `{"axes":[{"id":"","ticks":[]}]}`},
		{"duplicate axis", `{"axes":[{"id":"x"},{"id":"x"}]}`},
		{"bad frame", `{"frame":{"kind":"hexagonal"},"axes":[]}`},
		{"bad outline", `{"frame":{"outline":[[1,2,3]]},"axes":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "ticks.json")
	yamlPath := filepath.Join(dir, "ticks.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0644))

	dj, err := Load(jsonPath)
	require.NoError(t, err)
	dy, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, dj.TickCount(), dy.TickCount())

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestJSONRoundTripKeepsTicks(t *testing.T) {
	d, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	data, err := ToJSON(d, true)
	require.NoError(t, err)
	back, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestParseRenderConfigDefaults(t *testing.T) {
	cfg, err := ParseRenderConfig([]byte("font_size: 14\n"))
	require.NoError(t, err)

	def := DefaultRenderConfig()
	assert.Equal(t, 14.0, cfg.FontSize)
	assert.Equal(t, def.Width, cfg.Width)
	assert.Equal(t, def.Pad, cfg.Pad)
	assert.True(t, cfg.VisibleAxes.All)
}

func TestParseRenderConfigVisibleAxes(t *testing.T) {
	cfg, err := ParseRenderConfig([]byte("visible_axes: [dec, ra]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"dec", "ra"}, cfg.VisibleAxes.IDs)

	s := ticklabel.NewStore()
	s.Add("ra", nil, ticklabel.Point{}, 0, "1h", 0)
	s.Add("dec", nil, ticklabel.Point{}, 0, "1°", 0)
	s.SetVisibleAxes(cfg.VisibleAxes.Visibility())
	assert.Equal(t, []ticklabel.AxisID{"dec", "ra"}, s.VisibleAxes())

	cfg, err = ParseRenderConfig([]byte("visible_axes: all\n"))
	require.NoError(t, err)
	assert.True(t, cfg.VisibleAxes.All)

	cfg, err = ParseRenderConfig([]byte("visible_axes: ra\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ra"}, cfg.VisibleAxes.IDs)
}

func TestParseRenderConfigInvalid(t *testing.T) {
	for _, doc := range []string{
		"backend: pdf\n",
		"width: 0\n",
		"font_size: -1\n",
		"pad: -0.1\n",
		"frame: spiral\n",
		"reserved: [[0, 0, 1]]\n",
		"supersample: 0\n",
		"visible_axes: {ra: 1}\n",
	} {
		_, err := ParseRenderConfig([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestRenderConfigOptions(t *testing.T) {
	cfg, err := ParseRenderConfig([]byte("frame: arbitrary\npad: 0.5\nreserved: [[10, 20, 0, 0]]\n"))
	require.NoError(t, err)

	opts := cfg.Options(ticklabel.FrameRectangular)
	assert.Equal(t, ticklabel.FrameArbitrary, opts.Frame)
	assert.Equal(t, 0.5, opts.Pad)

	rects := cfg.ReservedRects()
	require.Len(t, rects, 1)
	assert.Equal(t, ticklabel.Rect{X: 5, Y: 10, W: 10, H: 20}, rects[0])
}

func TestLoadRenderConfigEmptyPath(t *testing.T) {
	cfg, err := LoadRenderConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRenderConfig(), cfg)
}
