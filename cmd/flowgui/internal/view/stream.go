package view

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Stream is the command output together with whether it is colored.
type Stream struct {
	io.Writer
	Colored bool
}

// NewStream wraps w. Output is colored when w is a terminal and NO_COLOR
// is unset.
func NewStream(w io.Writer) *Stream {
	return &Stream{Writer: w, Colored: IsTerminal(w) && !noColorEnv()}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func noColorEnv() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Println writes a line.
func (s *Stream) Println(a ...any) {
	fmt.Fprintln(s, a...)
}

// Printf writes formatted output.
func (s *Stream) Printf(format string, a ...any) {
	fmt.Fprintf(s, format, a...)
}

// paint returns a printer for attrs, or fmt.Sprint when the stream is not
// colored.
func (s *Stream) paint(attrs ...color.Attribute) func(a ...any) string {
	if !s.Colored {
		return fmt.Sprint
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

// HeadingColor returns the color used for headings and usage sections.
func HeadingColor() *color.Color {
	return color.New(color.FgHiBlue, color.Bold)
}

// Heading renders a section heading.
func (s *Stream) Heading(text string) string {
	if !s.Colored {
		return text
	}
	c := HeadingColor()
	c.EnableColor()
	return c.Sprint(text)
}
