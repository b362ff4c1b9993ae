package rendering

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/surface"
)

func TestRecorderNestsSurfaces(t *testing.T) {
	r := NewRecorder(graphics.Size{Width: 640, Height: 480}, nil)
	r.BeginFrame()
	err := r.TopPanel(identity.New(1, 0), func(s surface.Surface) error {
		s.Label(identity.New(2, 0), "title")
		return s.Indent(identity.New(3, 0), func(s surface.Surface) error {
			s.Label(identity.New(4, 0), "nested")
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	r.EndFrame()

	dl := r.DisplayList()
	want := []string{"beginPanel", "label", "beginIndent", "label", "endIndent", "endPanel"}
	if diff := cmp.Diff(want, dl.Kinds()); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	depths := make([]int, 0, dl.Len())
	for _, op := range dl.Ops() {
		depths = append(depths, op.Depth)
	}
	if diff := cmp.Diff([]int{0, 1, 1, 2, 1, 0}, depths); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}
	if dl.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", dl.Frame())
	}
	if !strings.Contains(dl.String(), "    label n4/0 \"nested\"") {
		t.Errorf("String() = %q", dl.String())
	}
}

func TestRecorderClosesBracketOnError(t *testing.T) {
	r := NewRecorder(graphics.Size{Width: 100, Height: 100}, nil)
	r.BeginFrame()
	boom := stderrors.New("boom")
	err := r.CentralPanel(func(surface.Surface) error { return boom })
	if err != boom {
		t.Fatalf("CentralPanel() = %v, want boom", err)
	}
	r.EndFrame()
	if diff := cmp.Diff([]string{"beginPanel", "endPanel"}, r.DisplayList().Kinds()); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderScriptedInteractionLastsOneFrame(t *testing.T) {
	r := NewRecorder(graphics.Size{Width: 100, Height: 100}, nil)
	id := identity.New(7, 0)
	r.Click(id)
	r.PickColor(id.Child(1), graphics.RGB(1, 2, 3))

	var clicked bool
	var picked graphics.Color
	frame := func() {
		r.BeginFrame()
		_ = r.CentralPanel(func(s surface.Surface) error {
			clicked = s.ImageButton(id, surface.Image{}, graphics.Size{Width: 8, Height: 8}, false)
			picked = s.ColorEdit(id.Child(1), graphics.ColorBlack)
			return nil
		})
		r.EndFrame()
	}

	frame()
	if !clicked || picked != graphics.RGB(1, 2, 3) {
		t.Errorf("first frame: clicked=%v picked=%v", clicked, picked)
	}
	frame()
	if clicked || picked != graphics.ColorBlack {
		t.Errorf("second frame: clicked=%v picked=%v", clicked, picked)
	}
}

func TestRecorderAreaAnchor(t *testing.T) {
	r := NewRecorder(graphics.Size{Width: 200, Height: 100}, nil)
	anchor := surface.AnchorBottomRight
	r.BeginFrame()
	_ = r.Area(identity.New(1, 0), surface.AreaOptions{
		Position: graphics.Offset{X: -10, Y: -5},
		Anchor:   &anchor,
	}, func(surface.Surface) error { return nil })
	r.EndFrame()

	op := r.DisplayList().Find("beginArea")[0]
	if op.Params["pos"] != "190,95" || op.Params["anchor"] != "BottomRight" {
		t.Errorf("params = %v", op.Params)
	}
}

func TestRecorderBackendReopens(t *testing.T) {
	r := NewRecorder(graphics.Size{}, nil)
	ctx, err := r.Backend()()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Close(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Close(); err == nil {
		t.Error("second Close() should fail")
	}
	if _, err := r.Backend()(); err != nil {
		t.Fatal(err)
	}
	if r.Closed() || r.Opens() != 2 {
		t.Errorf("Closed()=%v Opens()=%d", r.Closed(), r.Opens())
	}
}
