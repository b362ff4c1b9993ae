package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/types"
)

const panelsWire = `
name: panels
input: String
nodes:
  - kind: GUI
    params:
      Contents:
        - kind: GUI.Panels
          params:
            Top:
              - kind: UI.Label
                params:
                  Text: header
            Center:
              - kind: UI.Window
                params:
                  Title: Editor
                  Contents:
                    - kind: UI.Label
              - kind: UI.ColorInput
                params:
                  Variable: {var: tint}
`

const buttonWire = `
name: button
input: Texture
nodes:
  - kind: GUI
    params:
      Contents:
        - kind: UI.CentralPanel
          params:
            Contents:
              - kind: UI.ImageButton
                params:
                  Selected: {var: selected}
`

func TestNewWireTester_Defaults(t *testing.T) {
	tester := NewWireTesterWithT(t)
	if tester.size.Width != DefaultTestWidth || tester.size.Height != DefaultTestHeight {
		t.Errorf("expected default size %dx%d, got %vx%v", DefaultTestWidth, DefaultTestHeight, tester.size.Width, tester.size.Height)
	}
	if _, ok := tester.Registry().Lookup("UI.Label"); !ok {
		t.Error("expected the GUI kinds to be registered")
	}
	if _, err := tester.Pump("x"); !errors.Is(err, ErrNoWire) {
		t.Errorf("Pump without wire = %v, want ErrNoWire", err)
	}
}

func TestLoadAndPump(t *testing.T) {
	tester := NewWireTesterWithT(t)
	tester.MustLoad(panelsWire)

	out, err := tester.Pump("hello")
	if err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if out != "hello" {
		t.Errorf("output = %v, want hello", out)
	}
	if got := tester.Wire().Frame(); got != 1 {
		t.Errorf("frame = %d, want 1", got)
	}
	if tester.DisplayList().Frame() != 1 {
		t.Errorf("display list frame = %d", tester.DisplayList().Frame())
	}
	if v, ok := tester.Variable("tint"); !ok || v != graphics.ColorTransparent {
		t.Errorf("tint = %v, %v; want transparent", v, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	tester := NewWireTesterWithT(t)
	if err := tester.Load("name: [\n"); err == nil {
		t.Error("expected malformed YAML to fail")
	}
	if err := tester.Load("name: x\nnodes:\n  - kind: UI.Nope\n"); err == nil {
		t.Error("expected unknown kind to fail")
	}
	if err := tester.Load("name: x\nnodes:\n  - kind: UI.Label\n"); err == nil {
		t.Error("expected a label outside any GUI to fail compose")
	}
}

func TestCleanupStopsWire(t *testing.T) {
	tester := NewWireTester()
	tester.MustLoad(panelsWire)
	if _, err := tester.Pump("x"); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	rec := tester.Recorder()
	tester.Cleanup()
	if !rec.Closed() {
		t.Error("expected Cleanup to close the rendering context")
	}
	if tester.Wire() != nil {
		t.Error("expected Cleanup to drop the wire")
	}
	tester.Cleanup()
}

func TestReloadReplacesWire(t *testing.T) {
	tester := NewWireTesterWithT(t)
	tester.MustLoad(panelsWire)
	first := tester.Recorder()
	tester.MustLoad(panelsWire)
	if !first.Closed() {
		t.Error("expected the previous wire to be stopped")
	}
	if tester.Recorder() == first {
		t.Error("expected a fresh recorder")
	}
}

func TestPumpN(t *testing.T) {
	tester := NewWireTesterWithT(t)
	tester.MustLoad(panelsWire)
	if _, err := tester.PumpN(4, "x"); err != nil {
		t.Fatalf("PumpN: %v", err)
	}
	if got := tester.Wire().Frame(); got != 4 {
		t.Errorf("frame = %d, want 4", got)
	}
}

func TestPickColor(t *testing.T) {
	tester := NewWireTesterWithT(t)
	tester.MustLoad(panelsWire)
	tester.Pump("x")

	red := graphics.RGB(255, 0, 0)
	if err := tester.PickColor(ByKind("colorEdit"), red); err != nil {
		t.Fatalf("PickColor: %v", err)
	}
	tester.Pump("x")
	if v, _ := tester.Variable("tint"); v != red {
		t.Errorf("tint = %v, want %v", v, red)
	}
	// The pick lasts one frame; the variable keeps the value.
	tester.Pump("x")
	if op := tester.Find(ByKind("colorEdit")).First(); op.Params["color"] != red.Hex() {
		t.Errorf("colorEdit = %v", op.Params)
	}
}

func TestTap(t *testing.T) {
	tester := NewWireTesterWithT(t)
	tester.MustLoad(buttonWire)
	tex := &types.TextureRef{Handle: 7, Width: 16, Height: 16}

	// The GUI root passes its input through; the button state lives in the
	// selected variable and the display list.
	out, err := tester.Pump(tex)
	if err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if out != tex {
		t.Errorf("output = %v, want the input texture", out)
	}
	if v, _ := tester.Variable("selected"); v != false {
		t.Errorf("selected before tap = %v, want false", v)
	}
	if err := tester.Tap(ByKind("imageButton")); err != nil {
		t.Fatalf("Tap: %v", err)
	}

	if _, err := tester.Pump(tex); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	op := tester.Find(ByKind("imageButton")).First()
	if op.Params["clicked"] != true || op.Params["selected"] != false {
		t.Errorf("imageButton on tap frame = %v, want clicked and not yet selected", op.Params)
	}
	if v, _ := tester.Variable("selected"); v != true {
		t.Errorf("selected after tap = %v, want true", v)
	}

	if _, err := tester.Pump(tex); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	op = tester.Find(ByKind("imageButton")).First()
	if op.Params["clicked"] != false || op.Params["selected"] != true {
		t.Errorf("imageButton after tap = %v, want selected and not clicked", op.Params)
	}

	if err := tester.Tap(ByText("nothing")); err == nil {
		t.Error("expected Tap with no match to fail")
	}
}
