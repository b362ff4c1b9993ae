package view

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamHeading(t *testing.T) {
	plain := &Stream{Writer: &bytes.Buffer{}}
	if got := plain.Heading("Frames:"); got != "Frames:" {
		t.Errorf("uncolored Heading = %q", got)
	}

	colored := &Stream{Writer: &bytes.Buffer{}, Colored: true}
	got := colored.Heading("Frames:")
	if !strings.Contains(got, "Frames:") || !strings.HasPrefix(got, "\x1b[") {
		t.Errorf("colored Heading = %q, want an escape sequence around the text", got)
	}
}

func TestNewStreamIsPlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)
	if s.Colored {
		t.Error("a buffer is not a terminal")
	}
	s.Printf("%s %d\n", s.Heading("Wire"), 3)
	if got := buf.String(); got != "Wire 3\n" {
		t.Errorf("output = %q", got)
	}
}
