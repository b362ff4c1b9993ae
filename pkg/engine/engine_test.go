package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	flowerrors "github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/gui"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/rendering"
	"github.com/go-drift/flowgui/pkg/types"
)

// failNode fails every activation whose input is "boom".
type failNode struct{}

func (failNode) Activate(ctx *node.Context, input any) (any, error) {
	if input == "boom" {
		return nil, fmt.Errorf("exploded")
	}
	return input, nil
}

var failKind = &node.Kind{
	Name:        "test.Fail",
	Version:     "v1.0.0",
	InputTypes:  types.Types{types.Any},
	OutputTypes: types.Types{types.Any},
	New:         func() node.Node { return failNode{} },
}

type captureHandler struct {
	errs []*flowerrors.NodeError
}

func (h *captureHandler) HandleError(err *flowerrors.NodeError)  { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(err *flowerrors.PanicError) {}

func captureReports(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	flowerrors.SetHandler(h)
	t.Cleanup(func() { flowerrors.SetHandler(nil) })
	return h
}

type harness struct {
	engine  *Engine
	rec     *rendering.Recorder
	metrics *Metrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	reg := node.NewRegistry()
	if err := gui.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	reg.MustRegister(failKind)
	rec := rendering.NewRecorder(graphics.Size{Width: 640, Height: 480}, nil)
	metrics := NewMetrics()
	promReg := prometheus.NewRegistry()
	metrics.MustRegister(promReg)
	e := New(reg, Options{
		Logger:   logr.Discard(),
		Backend:  rec.Backend(),
		Metrics:  metrics,
		Gatherer: promReg,
	})
	return &harness{engine: e, rec: rec, metrics: metrics}
}

func (h *harness) build(t *testing.T, yaml string) *Wire {
	t.Helper()
	spec, err := ParseWireSpec([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseWireSpec: %v", err)
	}
	w, err := h.engine.Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return w
}

const windowWire = `
name: demo
input: String
nodes:
  - kind: GUI
    params:
      Contents:
        - kind: UI.Window
          params:
            Title: Stats
            Position: [10, 20]
            Width: 300
            Flags: NoResize|NoCollapse
            Contents:
              - kind: UI.Label
`

func TestEngineLifecycle(t *testing.T) {
	h := newHarness(t)
	w := h.build(t, windowWire)

	if err := h.engine.Compose(w); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !w.OutputType().Equal(types.String) {
		t.Errorf("output type = %v, want String", w.OutputType())
	}
	if err := h.engine.Warmup(w); err != nil {
		t.Fatalf("Warmup: %v", err)
	}
	for i := 0; i < 3; i++ {
		out, err := h.engine.Tick(w, "hello")
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if out != "hello" {
			t.Errorf("output = %v, want hello", out)
		}
	}
	if w.Frame() != 3 {
		t.Errorf("frame = %d, want 3", w.Frame())
	}

	windows := h.rec.DisplayList().Find("beginWindow")
	if len(windows) != 1 {
		t.Fatalf("windows = %+v", windows)
	}
	if got := windows[0].Params["title"]; got != "Stats" {
		t.Errorf("title = %v", got)
	}
	labels := h.rec.DisplayList().Find("label")
	if len(labels) != 1 || labels[0].Text != "hello" {
		t.Errorf("labels = %+v", labels)
	}

	if err := h.engine.Stop(w); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !h.rec.Closed() {
		t.Error("expected the rendering context to be closed")
	}
	if got := testutil.ToFloat64(h.metrics.frames.WithLabelValues("demo")); got != 3 {
		t.Errorf("frames_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(h.metrics.warmWires); got != 0 {
		t.Errorf("warm_wires = %v, want 0", got)
	}
	if got := len(h.engine.FrameTrace().Snapshot().Samples); got != 3 {
		t.Errorf("trace samples = %d, want 3", got)
	}
}

func TestEngineComposeFailureReportedOnce(t *testing.T) {
	reports := captureReports(t)
	h := newHarness(t)
	w := h.build(t, `
name: bare
nodes:
  - kind: UI.Label
`)
	err := h.engine.Compose(w)
	if !stderrors.Is(err, flowerrors.ErrMissingDependency) {
		t.Fatalf("Compose error = %v, want missing dependency", err)
	}
	if len(reports.errs) != 1 {
		t.Errorf("reports = %d, want 1", len(reports.errs))
	}
	if err := h.engine.Warmup(w); err == nil {
		t.Error("expected warmup of an uncomposed wire to fail")
	}
}

func TestEngineTickFailure(t *testing.T) {
	reports := captureReports(t)
	h := newHarness(t)
	w := h.build(t, `
name: failing
input: String
nodes:
  - kind: test.Fail
`)
	if err := h.engine.Compose(w); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if err := h.engine.Warmup(w); err != nil {
		t.Fatalf("Warmup: %v", err)
	}
	defer h.engine.Stop(w)

	if _, err := h.engine.Tick(w, "fine"); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	_, err := h.engine.Tick(w, "boom")
	if !stderrors.Is(err, flowerrors.ErrActivation) {
		t.Fatalf("Tick error = %v, want activation error", err)
	}
	var ne *flowerrors.NodeError
	if !stderrors.As(err, &ne) || ne.Node != "failing" || ne.Child != "test.Fail#0" {
		t.Errorf("error = %+v, want wire failing naming child test.Fail#0", ne)
	}
	if len(reports.errs) != 1 {
		t.Errorf("reports = %d, want 1", len(reports.errs))
	}

	trace := h.engine.FrameTrace().Snapshot()
	if trace.Failures != 1 || len(trace.Samples) != 2 || !trace.Samples[1].Failed {
		t.Errorf("trace = %+v", trace)
	}
	if got := testutil.ToFloat64(h.metrics.failures.WithLabelValues("failing", "activation")); got != 1 {
		t.Errorf("activation_failures_total = %v, want 1", got)
	}

	// A failed frame leaves the wire warm.
	if _, err := h.engine.Tick(w, "again"); err != nil {
		t.Errorf("Tick after failure: %v", err)
	}
}

func TestEngineRun(t *testing.T) {
	h := newHarness(t)
	w := h.build(t, windowWire)
	if err := h.engine.Run(context.Background(), w, 5, "tick"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if w.Frame() != 5 {
		t.Errorf("frames = %d, want 5", w.Frame())
	}
	if !h.rec.Closed() {
		t.Error("expected Run to stop the wire")
	}
}

func TestEngineRunStopsOnFirstError(t *testing.T) {
	captureReports(t)
	h := newHarness(t)
	w := h.build(t, `
name: failing
input: String
nodes:
  - kind: test.Fail
`)
	err := h.engine.Run(context.Background(), w, 10, "boom")
	if !stderrors.Is(err, flowerrors.ErrActivation) {
		t.Fatalf("Run error = %v, want activation error", err)
	}
	if w.Frame() != 1 {
		t.Errorf("frames = %d, want 1", w.Frame())
	}
}

func TestEngineRunUntilCancelled(t *testing.T) {
	h := newHarness(t)
	w := h.build(t, windowWire)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.engine.Run(ctx, w, 0, "x"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if w.Frame() != 0 {
		t.Errorf("frames = %d, want 0", w.Frame())
	}
}

func TestBuildUnknownParameter(t *testing.T) {
	h := newHarness(t)
	spec, err := ParseWireSpec([]byte(`
name: typo
nodes:
  - kind: UI.Label
    params:
      Txt: hi
`))
	if err != nil {
		t.Fatalf("ParseWireSpec: %v", err)
	}
	if _, err := h.engine.Build(spec); err == nil {
		t.Error("expected unknown parameter to fail")
	}
}

func TestBuildUnknownKind(t *testing.T) {
	h := newHarness(t)
	spec := &WireSpec{Name: "x", Nodes: []NodeSpec{{Kind: "UI.Nope"}}}
	if _, err := h.engine.Build(spec); err == nil {
		t.Error("expected unknown kind to fail")
	}
}

func TestDescribe(t *testing.T) {
	h := newHarness(t)
	w := h.build(t, windowWire)
	if err := h.engine.Compose(w); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	tree := Describe(w.Root())
	if len(tree) != 1 || tree[0].Kind != "GUI" {
		t.Fatalf("tree = %+v", tree)
	}
	window := tree[0].Slot("Contents")
	if len(window) != 1 || window[0].Kind != "UI.Window" {
		t.Fatalf("window = %+v", window)
	}
	if diff := cmp.Diff([]string{"GUI.Root", "UI.Parents"}, window[0].Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	label := window[0].Slot("Contents")
	if len(label) != 1 || label[0].Kind != "UI.Label" || label[0].State != "composed" {
		t.Errorf("label = %+v", label)
	}
}
