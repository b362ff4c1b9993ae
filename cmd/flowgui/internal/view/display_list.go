package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/go-drift/flowgui/pkg/engine"
	"github.com/go-drift/flowgui/pkg/rendering"
)

// DisplayList prints one op per line, indented by depth. Surface brackets,
// widgets and parameters are colored differently on a terminal.
func (s *Stream) DisplayList(dl *rendering.DisplayList) {
	if dl == nil || dl.Len() == 0 {
		s.Println("(nothing drawn)")
		return
	}
	surface := s.paint(color.FgBlue, color.Bold)
	widget := s.paint(color.FgGreen)
	faint := s.paint(color.Faint)
	text := s.paint(color.FgYellow)

	s.Printf("%s frame %d, %gx%g\n", s.Heading("Display list:"), dl.Frame(), dl.Size().Width, dl.Size().Height)
	for _, op := range dl.Ops() {
		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", op.Depth+1))
		if strings.HasPrefix(op.Kind, "begin") || strings.HasPrefix(op.Kind, "end") {
			sb.WriteString(surface(op.Kind))
		} else {
			sb.WriteString(widget(op.Kind))
		}
		if op.ID != "" {
			sb.WriteString(" " + faint(op.ID))
		}
		if op.Text != "" {
			sb.WriteString(" " + text(fmt.Sprintf("%q", op.Text)))
		}
		keys := make([]string, 0, len(op.Params))
		for k := range op.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf(" %s=%v", faint(k), op.Params[k]))
		}
		s.Println(sb.String())
	}
}

// FrameSummary prints the frame trace counters.
func (s *Stream) FrameSummary(tl engine.FrameTimeline) {
	var total float64
	for _, sample := range tl.Samples {
		total += sample.FrameMs
	}
	avg := 0.0
	if n := len(tl.Samples); n > 0 {
		avg = total / float64(n)
	}
	failures := fmt.Sprint(tl.Failures)
	if tl.Failures > 0 {
		failures = s.paint(color.FgRed)(failures)
	}
	s.Printf("%s %d sampled, avg %.3fms, %d over %.2fms, %s failed\n",
		s.Heading("Frames:"), len(tl.Samples), avg, tl.SlowFrames, tl.ThresholdMs, failures)
}

// Tree prints a composed wire as an indented node tree.
func (s *Stream) Tree(nodes []engine.NodeInfo) {
	s.tree(nodes, 1)
}

func (s *Stream) tree(nodes []engine.NodeInfo, depth int) {
	kind := s.paint(color.FgGreen)
	faint := s.paint(color.Faint)
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		line := fmt.Sprintf("%s%s %s", indent, kind(n.Name), faint(n.State))
		if n.Output != "" {
			line += " -> " + n.Output
		}
		if len(n.Required) > 0 {
			line += " requires " + strings.Join(n.Required, ",")
		}
		if len(n.Exposed) > 0 {
			line += " exposes " + strings.Join(n.Exposed, ",")
		}
		s.Println(line)

		for _, slot := range n.Slots {
			s.Printf("%s  %s:\n", indent, faint(slot.Name))
			s.tree(slot.Nodes, depth+2)
		}
	}
}
