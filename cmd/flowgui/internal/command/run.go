package command

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/flowgui/pkg/engine"
	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/gui"
	"github.com/go-drift/flowgui/pkg/memo"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/rendering"
	"github.com/go-drift/flowgui/pkg/theme"
	"github.com/go-drift/flowgui/pkg/types"
)

// RunOptions holds the options for the run command.
type RunOptions struct {
	Frames        int
	Input         string
	Style         string
	Width         float64
	Height        float64
	Interval      time.Duration
	SlowFrame     time.Duration
	DebugPort     int
	RuntimeSample time.Duration
}

func NewRunCommand(cli *CLI) *cobra.Command {
	opts := RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <wire.yaml>",
		Short: "Run a wire and print what it drew",
		Long: Highlight("flowgui run <wire.yaml>") + "\n\n" +
			"Compose and warm up a wire against the recording backend, activate it\n" +
			"for a number of frames and print the display list of the last frame\n" +
			"together with frame timing.\n\n" +
			"The --input value is converted to the wire's input type. Image and\n" +
			"Texture inputs are read from a PNG, JPEG, BMP or WebP file.\n",
		Example: "  flowgui run panels.yaml --frames 3\n" +
			"  flowgui run console.yaml --input 'boot ok' --style theme.yaml\n" +
			"  flowgui run demo.yaml --frames 0 --interval 16ms --debug-port 9999",
		Args: ExactArgsWithUsage(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, cli, args[0])
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.Frames, "frames", "n", 1, "Frames to activate; 0 runs until interrupted")
	f.StringVarP(&opts.Input, "input", "i", "", "Input passed to the wire every frame")
	f.StringVar(&opts.Style, "style", "", "YAML console style applied to consoles without one")
	f.Float64Var(&opts.Width, "width", 1280, "Screen width of the recording backend")
	f.Float64Var(&opts.Height, "height", 720, "Screen height of the recording backend")
	f.DurationVar(&opts.Interval, "interval", 0, "Delay between frames")
	f.DurationVar(&opts.SlowFrame, "slow-frame", 0, "Frame time above which a frame counts as slow (default 16.67ms)")
	f.IntVar(&opts.DebugPort, "debug-port", 0, "Serve the debug endpoints on this port while running; -1 picks one")
	f.DurationVar(&opts.RuntimeSample, "runtime-sample", 0, "Sample memory and GC stats at this interval")
	return cmd
}

func (o RunOptions) run(cmd *cobra.Command, cli *CLI, path string) error {
	spec, err := engine.LoadWireSpec(path)
	if err != nil {
		return err
	}
	if o.Style != "" {
		style, err := loadStyle(o.Style)
		if err != nil {
			return err
		}
		applyConsoleStyle(spec.Nodes, style)
	}

	reg := node.NewRegistry()
	if err := gui.Register(reg); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	cacheMetrics := memo.NewMetrics()
	cacheMetrics.MustRegister(registry)
	engineMetrics := engine.NewMetrics()
	engineMetrics.MustRegister(registry)

	diag := engine.DefaultDiagnosticsConfig()
	diag.DebugServerPort = o.DebugPort
	diag.RuntimeSampleInterval = o.RuntimeSample
	if o.SlowFrame > 0 {
		diag.TargetFrameTime = o.SlowFrame
	}

	recorder := rendering.NewRecorder(graphics.Size{Width: o.Width, Height: o.Height}, cacheMetrics)
	e := engine.New(reg, engine.Options{
		Logger:        cli.Logger,
		Backend:       recorder.Backend(),
		Metrics:       engineMetrics,
		Gatherer:      registry,
		Diagnostics:   diag,
		FrameInterval: o.Interval,
	})

	w, err := e.Build(spec)
	if err != nil {
		return err
	}
	input, err := parseInput(w.InputType, o.Input)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	runErr := e.Run(cmd.Context(), w, o.Frames, input)
	cli.DisplayList(recorder.DisplayList())
	cli.FrameSummary(e.FrameTrace().Snapshot())
	return runErr
}

// loadStyle reads a console style file and checks that it is valid before
// it reaches any node.
func loadStyle(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := theme.LoadLogTheme(data); err != nil {
		return nil, fmt.Errorf("style %s: %w", path, err)
	}
	var table map[string]any
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("style %s: %w", path, err)
	}
	return table, nil
}

// applyConsoleStyle sets Style on every console in specs that has none,
// nested ones included.
func applyConsoleStyle(specs []engine.NodeSpec, style map[string]any) {
	for i := range specs {
		styleNode(specs[i].Kind, &specs[i].Params, style)
	}
}

func styleNode(kind string, params *map[string]any, style map[string]any) {
	if kind == "UI.Console" {
		if _, ok := (*params)["Style"]; !ok {
			if *params == nil {
				*params = map[string]any{}
			}
			(*params)["Style"] = style
		}
	}
	for _, raw := range *params {
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			kind, _ := m["kind"].(string)
			nested, _ := m["params"].(map[string]any)
			styleNode(kind, &nested, style)
			if nested != nil {
				m["params"] = nested
			}
		}
	}
}

// parseInput converts the --input flag to a value of the wire's input type.
func parseInput(t types.Type, raw string) (any, error) {
	switch t.Basic {
	case types.BasicNone:
		if raw != "" {
			return nil, fmt.Errorf("wire takes no input")
		}
		return nil, nil
	case types.BasicAny, types.BasicString:
		return raw, nil
	case types.BasicBool:
		return strconv.ParseBool(raw)
	case types.BasicInt:
		return strconv.Atoi(raw)
	case types.BasicFloat:
		return strconv.ParseFloat(raw, 64)
	case types.BasicColor:
		return graphics.ParseHex(raw)
	case types.BasicImage:
		return loadImage(raw)
	case types.BasicTexture:
		img, err := loadImage(raw)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		return &types.TextureRef{Handle: 1, Width: b.Dx(), Height: b.Dy()}, nil
	}
	return nil, fmt.Errorf("cannot read %s input from the command line", t)
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("an image file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
