package types

import (
	"image"
	"testing"

	"github.com/go-drift/flowgui/pkg/graphics"
)

func TestMatches(t *testing.T) {
	ctxType := Object(FourCC("frag"), FourCC("eguC"))
	tests := []struct {
		name     string
		expected Type
		actual   Type
		want     bool
	}{
		{"any accepts string", Any, String, true},
		{"string vs int", String, Int, false},
		{"same object", ctxType, Object(FourCC("frag"), FourCC("eguC")), true},
		{"different object", ctxType, Object(FourCC("frag"), FourCC("eguU")), false},
		{"seq of any elems", SeqOf(), SeqOf(String), true},
		{"seq elem accepted", SeqOf(String, Int), SeqOf(Int), true},
		{"seq elem rejected", SeqOf(String), SeqOf(Int), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expected.Matches(tt.actual); got != tt.want {
				t.Errorf("%v.Matches(%v) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !SeqOf(String).Equal(SeqOf(String)) {
		t.Error("equal seqs should be equal")
	}
	if SeqOf(String).Equal(SeqOf(Int)) {
		t.Error("different seqs should differ")
	}
	if Any.Equal(String) {
		t.Error("Any is not Equal to String")
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		v    any
		want Type
	}{
		{nil, None},
		{true, Bool},
		{int64(3), Int},
		{1.5, Float},
		{[2]float64{1, 2}, Float2},
		{"hello", String},
		{graphics.ColorRed, Color},
		{image.NewRGBA(image.Rect(0, 0, 1, 1)), Image},
		{&TextureRef{Handle: 1}, Texture},
		{map[string]any{}, Table},
		{[]any{"a", "b", int64(1)}, SeqOf(String, Int)},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.v); !got.Equal(tt.want) {
			t.Errorf("TypeOf(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := Object(FourCC("frag"), FourCC("eguC")).String(); got != "Object(frag/eguC)" {
		t.Errorf("String() = %q", got)
	}
	if got := SeqOf(String, Int).String(); got != "Seq[String Int]" {
		t.Errorf("String() = %q", got)
	}
}
