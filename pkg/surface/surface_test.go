package surface

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/memo"
)

// nopSurface satisfies Surface for stack tests.
type nopSurface struct{ name string }

func (nopSurface) Label(identity.ID, string)                                {}
func (nopSurface) TextEdit(identity.ID, *graphics.LayoutJob)                {}
func (nopSurface) ColorEdit(_ identity.ID, c graphics.Color) graphics.Color { return c }
func (nopSurface) ProgressBar(identity.ID, float64, string, float64)        {}
func (nopSurface) ImageButton(identity.ID, Image, graphics.Size, bool) bool { return false }
func (s nopSurface) Indent(_ identity.ID, fn func(Surface) error) error     { return fn(s) }
func (s nopSurface) Scope(_ identity.ID, fn func(Surface) error) error      { return fn(s) }
func (s nopSurface) Scroll(_ identity.ID, fn func(Surface) error) error     { return fn(s) }
func (nopSurface) Caches() *memo.Caches                                     { return nil }

type closeCounter struct {
	Context
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestStackCurrentEmpty(t *testing.T) {
	var s Stack
	_, err := s.Current()
	if !stderrors.Is(err, errors.ErrNoActiveSurface) {
		t.Fatalf("Current() on empty stack = %v, want NoActiveSurface", err)
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop() on empty stack should report false")
	}
}

func TestStackPushPopLIFO(t *testing.T) {
	var s Stack
	outer, inner := nopSurface{"outer"}, nopSurface{"inner"}
	s.Push(identity.New(1, 0), outer)
	s.Push(identity.New(2, 0), inner)

	cur, err := s.Current()
	if err != nil || cur != inner {
		t.Fatalf("Current() = %v, %v; want inner", cur, err)
	}
	e, _ := s.Pop()
	if e.Scope != identity.New(2, 0) {
		t.Errorf("popped scope = %v", e.Scope)
	}
	cur, _ = s.Current()
	if cur != outer {
		t.Errorf("Current() after pop = %v, want outer", cur)
	}
}

func TestStackWithRestoresDepth(t *testing.T) {
	boom := stderrors.New("boom")
	tests := []struct {
		name    string
		fn      func(s *Stack) error
		wantErr error
		panics  bool
	}{
		{"success", func(*Stack) error { return nil }, nil, false},
		{"error", func(*Stack) error { return boom }, boom, false},
		{"leaked push", func(s *Stack) error {
			s.Push(identity.New(9, 0), nopSurface{"leak"})
			return boom
		}, boom, false},
		{"panic", func(*Stack) error { panic("nested") }, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Stack
			s.Push(identity.New(1, 0), nopSurface{"root"})
			before := s.Depth()

			func() {
				defer func() {
					r := recover()
					if (r != nil) != tt.panics {
						t.Errorf("panic = %v, want panics=%v", r, tt.panics)
					}
				}()
				err := s.With(identity.New(2, 0), nopSurface{"child"}, func() error {
					if s.Depth() != before+1 {
						t.Errorf("depth inside = %d, want %d", s.Depth(), before+1)
					}
					return tt.fn(&s)
				})
				if err != tt.wantErr {
					t.Errorf("With() = %v, want %v", err, tt.wantErr)
				}
			}()

			if s.Depth() != before {
				t.Errorf("depth after = %d, want %d", s.Depth(), before)
			}
		})
	}
}

func TestHandleRefCounting(t *testing.T) {
	ctx := &closeCounter{}
	h := NewHandle(ctx)
	if h.Refs() != 1 {
		t.Fatalf("Refs() = %d, want 1", h.Refs())
	}
	if err := h.Release(); err == nil {
		t.Error("Release() of the root reference should fail")
	}
	if err := h.Acquire(); err != nil {
		t.Fatal(err)
	}
	if err := h.Destroy(); err == nil {
		t.Error("Destroy() with an outstanding reference should fail")
	}
	if err := h.Release(); err != nil {
		t.Fatal(err)
	}
	if err := h.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := h.Destroy(); err != nil {
		t.Errorf("second Destroy() = %v, want nil", err)
	}
	if ctx.closed != 1 {
		t.Errorf("Close called %d times, want 1", ctx.closed)
	}
	if _, err := h.Context(); err == nil {
		t.Error("Context() after Destroy should fail")
	}
	if err := h.Acquire(); err == nil {
		t.Error("Acquire() after Destroy should fail")
	}
}

func TestAnchorPlace(t *testing.T) {
	screen := graphics.Size{Width: 800, Height: 600}
	size := graphics.Size{Width: 100, Height: 50}
	tests := []struct {
		anchor Anchor
		want   graphics.Offset
	}{
		{AnchorTopLeft, graphics.Offset{X: 10, Y: 10}},
		{AnchorCenter, graphics.Offset{X: 360, Y: 285}},
		{AnchorBottomRight, graphics.Offset{X: 710, Y: 560}},
		{AnchorTop, graphics.Offset{X: 360, Y: 10}},
		{AnchorLeft, graphics.Offset{X: 10, Y: 285}},
	}
	for _, tt := range tests {
		got := tt.anchor.Place(graphics.Offset{X: 10, Y: 10}, size, screen)
		if got != tt.want {
			t.Errorf("%v.Place() = %+v, want %+v", tt.anchor, got, tt.want)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	a, err := ParseAnchor("bottomleft")
	if err != nil || a != AnchorBottomLeft {
		t.Errorf("ParseAnchor = %v, %v", a, err)
	}
	if a.String() != "BottomLeft" {
		t.Errorf("String() = %q", a.String())
	}
	if _, err := ParseAnchor("middle"); err == nil {
		t.Error("expected error for unknown anchor")
	}
	if Anchor(0x33).Valid() {
		t.Error("0x33 should not be a valid anchor")
	}
}

func TestWindowFlags(t *testing.T) {
	f := WindowNoTitleBar | WindowNoCollapse
	if f != 9 {
		t.Errorf("flags = %d, want 9", f)
	}
	if got := f.String(); got != "NoTitleBar|NoCollapse" {
		t.Errorf("String() = %q", got)
	}
	if g, err := ParseWindowFlag("noresize"); err != nil || g != 2 {
		t.Errorf("ParseWindowFlag = %v, %v", g, err)
	}
}
