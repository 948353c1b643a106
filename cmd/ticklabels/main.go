// Command ticklabels lays out and renders tick labels from tick-set documents.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/ticklabel-toolkit/internal/monitoring"
	"github.com/ha1tch/ticklabel-toolkit/pkg/render/plotvg"
	"github.com/ha1tch/ticklabel-toolkit/pkg/render/raster"
	"github.com/ha1tch/ticklabel-toolkit/pkg/render/term"
	"github.com/ha1tch/ticklabel-toolkit/pkg/render/vector"
	"github.com/ha1tch/ticklabel-toolkit/pkg/tickfile"
	"github.com/ha1tch/ticklabel-toolkit/pkg/ticklabel"
)

const usage = `ticklabels - tick label placement toolkit

Usage:
  ticklabels <command> [options]

Commands:
  render     Lay out and draw labels to PNG or SVG
  simplify   Print the simplified label text of each axis
  info       Show the placement of every label
  preview    Show the labels in the terminal

Examples:
  ticklabels render ticks.yaml -o ticks.png
  ticklabels render ticks.json -c render.yaml -o ticks.svg
  ticklabels simplify ticks.yaml
  ticklabels info ticks.yaml -c render.yaml
  ticklabels preview ticks.yaml

Options:
  -b, --backend <name>  png, svg or plot (overrides the config)
  -c, --config <file>   YAML render configuration
  -o, --output <file>   output file; its extension also picks the backend
  -v, --verbose         log progress to stderr
`

// canvas is what the CLI needs from a backend beyond label drawing.
type canvas interface {
	ticklabel.Renderer
	DrawLine(p1, p2 ticklabel.Point)
	DrawPolygon(pts []ticklabel.Point)
}

type options struct {
	input   string
	output  string
	config  string
	backend string
	verbose bool
}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "render":
		cmdRender(args)
	case "simplify":
		cmdSimplify(args)
	case "info":
		cmdInfo(args)
	case "preview":
		cmdPreview(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func parseArgs(cmd string, args []string) options {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(os.Stderr, "Usage: ticklabels %s <input> [-c config] [-b backend] [-o output] [-v]\n", cmd)
		os.Exit(1)
	}

	opts := options{input: args[0]}
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				opts.output = args[i+1]
				i++
			}
		case "-b", "--backend":
			if i+1 < len(args) {
				opts.backend = args[i+1]
				i++
			}
		case "-c", "--config":
			if i+1 < len(args) {
				opts.config = args[i+1]
				i++
			}
		case "-v", "--verbose":
			opts.verbose = true
		}
	}

	if opts.verbose {
		monitoring.SetLogger(func(format string, v ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", v...)
		})
	} else {
		monitoring.SetLogger(nil)
	}
	return opts
}

// load reads the document and configuration and fills a store.
func load(opts options) (*tickfile.Document, tickfile.RenderConfig, *ticklabel.TickLabels) {
	doc, err := tickfile.Load(opts.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", opts.input, err)
		os.Exit(1)
	}
	cfg, err := tickfile.LoadRenderConfig(opts.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", opts.config, err)
		os.Exit(1)
	}

	frame, _ := doc.FrameKind()
	tl := ticklabel.NewTickLabels(frame)
	tl.Options = cfg.Options(frame)
	tl.Debug = opts.verbose
	doc.Fill(tl.Store)
	tl.SetVisibleAxes(cfg.VisibleAxes.Visibility())

	monitoring.Logf("loaded %s: %d axes, %d ticks, %s frame", opts.input, len(doc.Axes), doc.TickCount(), tl.Options.Frame)
	return doc, cfg, tl
}

func cmdRender(args []string) {
	opts := parseArgs("render", args)
	doc, cfg, tl := load(opts)

	backend, output, err := selectBackend(cfg.Backend, opts.backend, opts.input, opts.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts.output = output

	c, write, err := newCanvas(backend, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s canvas: %v\n", backend, err)
		os.Exit(1)
	}

	drawn := drawDocument(c, doc, cfg, tl)
	monitoring.Logf("%s: drew %d labels", backend, len(drawn))

	f, err := os.Create(opts.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", opts.output, err)
		os.Exit(1)
	}
	if err := write(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", opts.output, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", opts.output, err)
		os.Exit(1)
	}

	fmt.Printf("Written: %s (%d of %d labels)\n", opts.output, len(drawn), doc.TickCount())
}

// selectBackend resolves the backend and the output file. An explicit
// backend overrides the configured one and an output extension overrides
// both: ".svg" always means svg, ".png" means png or plot. With no output the
// file is named after input.
func selectBackend(configured, override, input, output string) (string, string, error) {
	backend := configured
	if override != "" {
		backend = override
	}
	switch backend {
	case "png", "svg", "plot":
	default:
		return "", "", fmt.Errorf("unknown backend %q (want png, svg or plot)", backend)
	}

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if backend == "svg" {
			return backend, base + ".svg", nil
		}
		return backend, base + ".png", nil
	}

	switch ext := filepath.Ext(output); ext {
	case ".svg":
		backend = "svg"
	case ".png":
		if backend == "svg" {
			backend = "png"
		}
	default:
		return "", "", fmt.Errorf("unknown output format: %s", ext)
	}
	return backend, output, nil
}

// newCanvas creates the backend named by the config and the function that
// encodes it.
func newCanvas(backend string, cfg tickfile.RenderConfig) (canvas, func(io.Writer) error, error) {
	switch backend {
	case "svg":
		s := vector.New(vector.Options{Width: cfg.Width, Height: cfg.Height, DPI: cfg.DPI})
		return s, func(w io.Writer) error {
			_, err := s.WriteTo(w)
			return err
		}, nil
	case "plot":
		po := plotvg.DefaultOptions()
		po.Width, po.Height, po.DPI = cfg.Width, cfg.Height, int(math.Round(cfg.DPI))
		p, err := plotvg.New(po)
		if err != nil {
			return nil, nil, err
		}
		return p, p.WritePNG, nil
	default:
		ro := raster.DefaultOptions()
		ro.Width, ro.Height, ro.DPI, ro.Supersample = cfg.Width, cfg.Height, cfg.DPI, cfg.Supersample
		r, err := raster.New(ro)
		if err != nil {
			return nil, nil, err
		}
		return r, func(w io.Writer) error {
			defer r.Close()
			return r.WritePNG(w)
		}, nil
	}
}

// drawDocument draws the frame outline, a mark at every visible tick and the
// labels that survive overlap removal.
func drawDocument(c canvas, doc *tickfile.Document, cfg tickfile.RenderConfig, tl *ticklabel.TickLabels) []ticklabel.Rect {
	if outline := doc.OutlinePoints(); len(outline) > 1 {
		c.DrawPolygon(outline)
	}

	if cfg.TickLength > 0 {
		for _, axis := range tl.VisibleAxes() {
			for _, t := range tl.Ticks(axis) {
				rad := t.Angle * math.Pi / 180
				end := ticklabel.Point{
					X: t.Pixel.X + cfg.TickLength*math.Cos(rad),
					Y: t.Pixel.Y + cfg.TickLength*math.Sin(rad),
				}
				c.DrawLine(t.Pixel, end)
			}
		}
	}

	return tl.Draw(c, cfg.ReservedRects())
}

// planDocument lays out the labels with the metrics of the backend render
// would draw them with, without drawing anything.
func planDocument(backend string, cfg tickfile.RenderConfig, tl *ticklabel.TickLabels) ([]ticklabel.Placement, error) {
	c, _, err := newCanvas(backend, cfg)
	if err != nil {
		return nil, err
	}
	if cl, ok := c.(io.Closer); ok {
		defer cl.Close()
	}
	return ticklabel.Plan(tl.Store, c, tl.Options, cfg.ReservedRects()), nil
}

func cmdSimplify(args []string) {
	opts := parseArgs("simplify", args)
	_, _, tl := load(opts)

	tl.SimplifyLabels()
	for _, axis := range tl.Axes() {
		fmt.Printf("%s:\n", axis)
		for _, t := range tl.Ticks(axis) {
			fmt.Printf("  %-12s %q\n", formatWorld(t.World), t.Text)
		}
	}
}

func cmdInfo(args []string) {
	opts := parseArgs("info", args)
	doc, cfg, tl := load(opts)

	backend, _, err := selectBackend(cfg.Backend, opts.backend, opts.input, opts.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	placements, err := planDocument(backend, cfg, tl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s canvas: %v\n", backend, err)
		os.Exit(1)
	}

	if doc.Name != "" {
		fmt.Printf("Name:     %s\n", doc.Name)
	}
	fmt.Printf("Backend:  %s\n", backend)
	fmt.Printf("Frame:    %s\n", tl.Options.Frame)
	fmt.Printf("Axes:     %d\n", len(doc.Axes))
	fmt.Printf("Ticks:    %d\n", doc.TickCount())

	accepted := 0
	for _, p := range placements {
		if p.Accepted {
			accepted++
		}
	}
	fmt.Printf("Accepted: %d\n", accepted)
	fmt.Printf("Rejected: %d\n", len(placements)-accepted)
	fmt.Println()

	for _, p := range placements {
		status := "ok"
		if !p.Accepted {
			status = "overlap"
		}
		fmt.Printf("  %-6s %3d  %-10q at (%.1f, %.1f) %s/%s  %s\n",
			p.Axis, p.Index, p.Label.Text, p.Label.Pos.X, p.Label.Pos.Y,
			p.Label.HAlign, p.Label.VAlign, status)
	}
}

func cmdPreview(args []string) {
	opts := parseArgs("preview", args)
	doc, cfg, tl := load(opts)

	// Logging would write over the screen.
	monitoring.SetLogger(nil)
	tl.Debug = false

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	draw := func() {
		screen.Clear()
		s := term.New(screen, fitCells(screen, cfg))
		// Each pass simplifies the labels in place, so start from the document.
		tl.Clear()
		doc.Fill(tl.Store)
		tl.ResetAcceptedBoxes()
		drawn := drawDocument(s, doc, cfg, tl)
		status := fmt.Sprintf(" %d/%d labels  q: quit ", len(drawn), doc.TickCount())
		for i, r := range status {
			screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
		}
		screen.Show()
	}
	draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		}
	}
}

// fitCells scales the cell size so the configured canvas fills the screen.
func fitCells(screen tcell.Screen, cfg tickfile.RenderConfig) term.Options {
	cols, rows := screen.Size()
	o := term.DefaultOptions()
	o.DPI = cfg.DPI
	if cols > 0 && rows > 0 {
		o.CellWidth = float64(cfg.Width) / float64(cols)
		o.CellHeight = float64(cfg.Height) / float64(rows)
	}
	return o
}

func formatWorld(w []float64) string {
	if len(w) == 0 {
		return "-"
	}
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ",")
}
