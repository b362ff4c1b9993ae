package scope

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/types"
)

func names(infos []ExposedInfo) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Name
	}
	return out
}

func TestWithDoesNotMutateParent(t *testing.T) {
	parent := Empty().With(ExposedInfo{Name: "root", Type: types.Int})
	left := parent.With(ExposedInfo{Name: "left", Type: types.Bool})
	right := parent.With(ExposedInfo{Name: "right", Type: types.Bool})

	if _, ok := left.Lookup("right"); ok {
		t.Error("sibling exposure leaked into left scope")
	}
	if _, ok := right.Lookup("left"); ok {
		t.Error("sibling exposure leaked into right scope")
	}
	if _, ok := left.Lookup("root"); !ok {
		t.Error("ancestor exposure should be visible")
	}
	if parent.Len() != 1 {
		t.Errorf("parent Len() = %d, want 1", parent.Len())
	}
	if diff := cmp.Diff([]string{"left", "root"}, names(left.Infos())); diff != "" {
		t.Errorf("Infos() mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroTableIsEmpty(t *testing.T) {
	var tbl Table
	if tbl.Len() != 0 {
		t.Errorf("zero Table Len() = %d", tbl.Len())
	}
	if _, ok := tbl.Lookup("x"); ok {
		t.Error("zero Table should have no entries")
	}
	if tbl.With(ExposedInfo{Name: "x"}).Len() != 1 {
		t.Error("With on zero Table should work")
	}
}

func TestRequire(t *testing.T) {
	tbl := Empty().With(ExposedInfo{Name: "GUI.Root", Type: types.Object(1, 2)})

	if err := Require(tbl, "n", []ExposedInfo{{Name: "GUI.Root", Type: types.Object(1, 2)}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Require(tbl, "n", []ExposedInfo{{Name: "GUI.Root", Type: types.Any}}); err != nil {
		t.Errorf("Any requirement should accept: %v", err)
	}

	err := Require(tbl, "n", []ExposedInfo{{Name: "UI.Parents", Type: types.SeqOf()}})
	if !stderrors.Is(err, errors.ErrMissingDependency) {
		t.Errorf("expected MissingDependency, got %v", err)
	}

	err = Require(tbl, "n", []ExposedInfo{{Name: "GUI.Root", Type: types.String}})
	if !stderrors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("expected TypeMismatch, got %v", err)
	}
}

func TestExposeIsIdempotentForMatchingType(t *testing.T) {
	tbl := Empty().With(ExposedInfo{Name: "color", Type: types.Color})

	out, added, err := Expose(tbl, "n", []ExposedInfo{{Name: "color", Type: types.Color}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("added = %v, want none", names(added))
	}
	if out.Len() != 1 {
		t.Errorf("Len() = %d, want 1", out.Len())
	}

	_, _, err = Expose(tbl, "n", []ExposedInfo{{Name: "color", Type: types.Bool}})
	if !stderrors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("expected TypeMismatch, got %v", err)
	}

	out, added, err = Expose(tbl, "n", []ExposedInfo{{Name: "flag", Type: types.Bool}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"flag"}, names(added)); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}
	if out.Len() != 2 {
		t.Errorf("Len() = %d, want 2", out.Len())
	}
}

func TestBindingReconcile(t *testing.T) {
	tbl := Empty().With(ExposedInfo{Name: "picked", Type: types.Color})

	tests := []struct {
		name       string
		binding    Binding
		wantExpose bool
		wantKind   errors.ErrorKind
	}{
		{"literal", Binding{Type: types.Color}, false, errors.KindUnknown},
		{"new name", Binding{Name: "fresh", Type: types.Color}, true, errors.KindUnknown},
		{"existing same type", Binding{Name: "picked", Type: types.Color}, false, errors.KindUnknown},
		{"existing other type", Binding{Name: "picked", Type: types.Bool}, false, errors.KindTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.binding
			err := b.Reconcile(tbl, "UI.ColorInput#1")
			if got := errors.KindOf(err); got != tt.wantKind {
				t.Fatalf("error kind = %v (%v), want %v", got, err, tt.wantKind)
			}
			if b.ShouldExpose() != tt.wantExpose {
				t.Errorf("ShouldExpose() = %v, want %v", b.ShouldExpose(), tt.wantExpose)
			}
			if tt.wantExpose && len(b.Exposed()) != 1 {
				t.Errorf("Exposed() = %v, want one entry", b.Exposed())
			}
			if !tt.wantExpose && len(b.Exposed()) != 0 {
				t.Errorf("Exposed() = %v, want none", b.Exposed())
			}
		})
	}
}
