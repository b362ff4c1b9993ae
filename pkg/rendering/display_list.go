// Package rendering provides a recording implementation of surface.Context.
//
// A Recorder draws nothing. Every panel, window, area and widget call is
// appended to a DisplayList that can be inspected by tests or printed by the
// command line tool.
package rendering

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-drift/flowgui/pkg/graphics"
)

// Op is one recorded call. Depth is the nesting level of the surface the
// call was made on; begin/end pairs bracket nested surfaces.
type Op struct {
	Kind   string
	ID     string
	Depth  int
	Text   string
	Params map[string]any
	// Job is the styled text drawn by a textEdit op.
	Job *graphics.LayoutJob
}

// DisplayList is an immutable list of recorded ops for one frame.
type DisplayList struct {
	ops   []Op
	size  graphics.Size
	frame int
}

// Ops returns a copy of the recorded ops.
func (d *DisplayList) Ops() []Op {
	if d == nil {
		return nil
	}
	out := make([]Op, len(d.ops))
	copy(out, d.ops)
	return out
}

// Len returns the number of recorded ops.
func (d *DisplayList) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ops)
}

// Size returns the screen size the frame was recorded at.
func (d *DisplayList) Size() graphics.Size {
	return d.size
}

// Frame returns the frame number the list was recorded in, starting at 1.
func (d *DisplayList) Frame() int {
	return d.frame
}

// Kinds returns the op kinds in order.
func (d *DisplayList) Kinds() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.ops))
	for i, op := range d.ops {
		out[i] = op.Kind
	}
	return out
}

// Find returns the ops of the given kind.
func (d *DisplayList) Find(kind string) []Op {
	if d == nil {
		return nil
	}
	var out []Op
	for _, op := range d.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// String renders one op per line, indented by depth.
func (d *DisplayList) String() string {
	var sb strings.Builder
	for _, op := range d.Ops() {
		sb.WriteString(strings.Repeat("  ", op.Depth))
		sb.WriteString(op.Format())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format renders op without indentation.
func (op Op) Format() string {
	var sb strings.Builder
	sb.WriteString(op.Kind)
	if op.ID != "" {
		sb.WriteString(" ")
		sb.WriteString(op.ID)
	}
	if op.Text != "" {
		fmt.Fprintf(&sb, " %q", op.Text)
	}
	keys := make([]string, 0, len(op.Params))
	for k := range op.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, op.Params[k])
	}
	return sb.String()
}
