package testing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-logr/logr"

	"github.com/go-drift/flowgui/pkg/engine"
	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/gui"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/rendering"
)

const (
	// DefaultTestWidth is the default logical width for the test screen.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test screen.
	DefaultTestHeight = 600
)

// ErrNoWire is returned when a tester is pumped before a wire is loaded.
var ErrNoWire = errors.New("no wire loaded")

// WireTester runs a wire against a recording backend. It drives the same
// compose, warmup, activation and cleanup phases as the engine but draws
// into a rendering.Recorder instead of a window.
type WireTester struct {
	t        testing.TB
	reg      *node.Registry
	logger   logr.Logger
	size     graphics.Size
	engine   *engine.Engine
	recorder *rendering.Recorder
	wire     *engine.Wire
}

// NewWireTester creates a tester with the GUI kinds registered.
// Call Cleanup() when done, or use NewWireTesterWithT() instead.
func NewWireTester() *WireTester {
	reg := node.NewRegistry()
	if err := gui.Register(reg); err != nil {
		panic(err)
	}
	return &WireTester{
		reg:    reg,
		logger: logr.Discard(),
		size:   graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
}

// NewWireTesterWithT creates a tester that auto-cleans up via t.Cleanup()
// and fails t from the Must helpers. This is the recommended constructor
// for tests.
func NewWireTesterWithT(t testing.TB) *WireTester {
	tester := NewWireTester()
	tester.t = t
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup stops the loaded wire.
func (t *WireTester) Cleanup() {
	if t.wire != nil {
		t.engine.Stop(t.wire)
		t.wire = nil
	}
}

// SetSize sets the logical screen size. Must be called before Load.
func (t *WireTester) SetSize(size graphics.Size) {
	t.size = size
}

// SetLogger routes node and engine logs. Must be called before Load.
func (t *WireTester) SetLogger(logger logr.Logger) {
	t.logger = logger
}

// Registry returns the registry wires are built from, so tests can add
// their own kinds before loading.
func (t *WireTester) Registry() *node.Registry {
	return t.reg
}

// Load builds, composes and warms the wire described by YAML, replacing
// any previously loaded wire.
func (t *WireTester) Load(yaml string) error {
	spec, err := engine.ParseWireSpec([]byte(yaml))
	if err != nil {
		return err
	}
	return t.LoadSpec(spec)
}

// MustLoad is Load that fails the test on error.
func (t *WireTester) MustLoad(yaml string) {
	if err := t.Load(yaml); err != nil {
		t.fatalf("Load: %v", err)
	}
}

// LoadSpec is Load for an already decoded wire description.
func (t *WireTester) LoadSpec(spec *engine.WireSpec) error {
	t.Cleanup()
	t.recorder = rendering.NewRecorder(t.size, nil)
	t.engine = engine.New(t.reg, engine.Options{
		Logger:  t.logger,
		Backend: t.recorder.Backend(),
	})
	w, err := t.engine.Build(spec)
	if err != nil {
		return err
	}
	if err := t.engine.Compose(w); err != nil {
		return err
	}
	if err := t.engine.Warmup(w); err != nil {
		return err
	}
	t.wire = w
	return nil
}

// Pump activates one frame with input and returns the wire's output.
func (t *WireTester) Pump(input any) (any, error) {
	if t.wire == nil {
		return nil, ErrNoWire
	}
	return t.engine.Tick(t.wire, input)
}

// PumpN activates n frames with the same input and returns the last output.
func (t *WireTester) PumpN(n int, input any) (any, error) {
	var out any
	for i := 0; i < n; i++ {
		var err error
		if out, err = t.Pump(input); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return out, nil
}

// Wire returns the loaded wire, or nil.
func (t *WireTester) Wire() *engine.Wire {
	return t.wire
}

// Engine returns the engine driving the loaded wire.
func (t *WireTester) Engine() *engine.Engine {
	return t.engine
}

// Recorder returns the recording backend of the loaded wire.
func (t *WireTester) Recorder() *rendering.Recorder {
	return t.recorder
}

// DisplayList returns the ops of the last completed frame.
func (t *WireTester) DisplayList() *rendering.DisplayList {
	if t.recorder == nil {
		return nil
	}
	return t.recorder.DisplayList()
}

// Find evaluates a finder against the last frame.
func (t *WireTester) Find(finder Finder) FinderResult {
	ops := t.DisplayList().Ops()
	var matches []rendering.Op
	for _, i := range finder.Evaluate(ops) {
		matches = append(matches, ops[i])
	}
	return FinderResult{ops: matches, finder: finder}
}

// Variable returns the current value of a context variable.
func (t *WireTester) Variable(name string) (any, bool) {
	if t.wire == nil || t.wire.Context() == nil {
		return nil, false
	}
	v, ok := t.wire.Context().Vars.Lookup(name)
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// Tap makes the first widget matched by finder report a click during the
// next frame.
func (t *WireTester) Tap(finder Finder) error {
	id, err := t.target(finder)
	if err != nil {
		return err
	}
	t.recorder.Click(id)
	return nil
}

// PickColor makes the first color editor matched by finder return c during
// the next frame.
func (t *WireTester) PickColor(finder Finder, c graphics.Color) error {
	id, err := t.target(finder)
	if err != nil {
		return err
	}
	t.recorder.PickColor(id, c)
	return nil
}

func (t *WireTester) target(finder Finder) (identity.ID, error) {
	op, ok := t.Find(finder).FirstOrZero()
	if !ok {
		return identity.ID{}, fmt.Errorf("finder found no ops: %s", finder.Description())
	}
	return identity.ParseID(op.ID)
}

func (t *WireTester) fatalf(format string, args ...any) {
	if t.t == nil {
		panic(fmt.Sprintf(format, args...))
	}
	t.t.Helper()
	t.t.Fatalf(format, args...)
}
