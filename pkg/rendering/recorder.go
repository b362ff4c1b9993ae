package rendering

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/memo"
	"github.com/go-drift/flowgui/pkg/surface"
)

// Recorder records the calls of one frame at a time.
//
// Interaction is scripted: Click and PickColor queue a response that the
// matching widget returns during the next frame only.
type Recorder struct {
	screen graphics.Size
	caches *memo.Caches

	ops       []Op
	recording bool
	frame     int
	last      *DisplayList
	closed    bool
	opens     int

	clicks map[identity.ID]bool
	picks  map[identity.ID]graphics.Color
}

// NewRecorder creates a recorder for a screen of the given size. m may be nil.
func NewRecorder(screen graphics.Size, m *memo.Metrics) *Recorder {
	return &Recorder{
		screen: screen,
		caches: memo.New(m),
		clicks: make(map[identity.ID]bool),
		picks:  make(map[identity.ID]graphics.Color),
	}
}

// Backend returns a surface.Backend that hands out r, reopening it if a
// previous owner closed it.
func (r *Recorder) Backend() surface.Backend {
	return func() (surface.Context, error) {
		r.closed = false
		r.opens++
		return r, nil
	}
}

// Opens returns how many times the backend handed out the recorder.
func (r *Recorder) Opens() int {
	return r.opens
}

// Closed reports whether the last owner closed the recorder.
func (r *Recorder) Closed() bool {
	return r.closed
}

// Click makes the image button with id report a click next frame.
func (r *Recorder) Click(id identity.ID) {
	r.clicks[id] = true
}

// PickColor makes the colour editor with id return c next frame.
func (r *Recorder) PickColor(id identity.ID, c graphics.Color) {
	r.picks[id] = c
}

// DisplayList returns the ops of the last completed frame.
func (r *Recorder) DisplayList() *DisplayList {
	return r.last
}

// Pending returns the ops recorded so far in an unfinished frame.
func (r *Recorder) Pending() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Recorder) BeginFrame() {
	r.ops = r.ops[:0]
	r.recording = true
	r.frame++
}

func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}
	r.recording = false
	ops := make([]Op, len(r.ops))
	copy(ops, r.ops)
	r.last = &DisplayList{ops: ops, size: r.screen, frame: r.frame}
	clear(r.clicks)
	clear(r.picks)
}

func (r *Recorder) append(op Op) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

// nest records a begin op, runs fn on a child surface one level deeper and
// records the matching end op on every exit path.
func (r *Recorder) nest(kind string, id identity.ID, depth int, params map[string]any, fn func(surface.Surface) error) error {
	r.append(Op{Kind: "begin" + kind, ID: id.String(), Depth: depth, Params: params})
	defer r.append(Op{Kind: "end" + kind, ID: id.String(), Depth: depth})
	return fn(&recordingSurface{rec: r, depth: depth + 1})
}

func (r *Recorder) panel(side string, id identity.ID, fn func(surface.Surface) error) error {
	return r.nest("Panel", id, 0, map[string]any{"side": side}, fn)
}

func (r *Recorder) TopPanel(id identity.ID, fn func(surface.Surface) error) error {
	return r.panel("top", id, fn)
}

func (r *Recorder) BottomPanel(id identity.ID, fn func(surface.Surface) error) error {
	return r.panel("bottom", id, fn)
}

func (r *Recorder) LeftPanel(id identity.ID, fn func(surface.Surface) error) error {
	return r.panel("left", id, fn)
}

func (r *Recorder) RightPanel(id identity.ID, fn func(surface.Surface) error) error {
	return r.panel("right", id, fn)
}

func (r *Recorder) CentralPanel(fn func(surface.Surface) error) error {
	return r.nest("Panel", identity.ID{}, 0, map[string]any{"side": "center"}, fn)
}

func (r *Recorder) Window(id identity.ID, opts surface.WindowOptions, fn func(surface.Surface) error) error {
	params := map[string]any{"title": opts.Title}
	if opts.Position != nil {
		params["pos"] = fmt.Sprintf("%g,%g", opts.Position.X, opts.Position.Y)
	}
	if opts.Width > 0 {
		params["width"] = opts.Width
	}
	if opts.Height > 0 {
		params["height"] = opts.Height
	}
	if opts.Flags != 0 {
		params["flags"] = opts.Flags.String()
	}
	return r.nest("Window", id, 0, params, fn)
}

func (r *Recorder) Area(id identity.ID, opts surface.AreaOptions, fn func(surface.Surface) error) error {
	pos := opts.Position
	params := map[string]any{}
	if opts.Anchor != nil {
		// Content size is unknown before layout; pin the corner itself.
		pos = opts.Anchor.Place(opts.Position, graphics.Size{}, r.screen)
		params["anchor"] = opts.Anchor.String()
	}
	params["pos"] = fmt.Sprintf("%g,%g", pos.X, pos.Y)
	return r.nest("Area", id, 0, params, fn)
}

func (r *Recorder) Caches() *memo.Caches {
	return r.caches
}

func (r *Recorder) ScreenSize() graphics.Size {
	return r.screen
}

func (r *Recorder) Close() error {
	if r.closed {
		return fmt.Errorf("rendering: recorder already closed")
	}
	r.closed = true
	return nil
}

type recordingSurface struct {
	rec   *Recorder
	depth int
}

func (s *recordingSurface) Label(id identity.ID, text string) {
	s.rec.append(Op{Kind: "label", ID: id.String(), Depth: s.depth, Text: text})
}

func (s *recordingSurface) TextEdit(id identity.ID, job *graphics.LayoutJob) {
	size := graphics.Measure(job)
	s.rec.append(Op{
		Kind:  "textEdit",
		ID:    id.String(),
		Depth: s.depth,
		Text:  job.Text,
		Params: map[string]any{
			"runs": len(job.Runs()),
			"size": fmt.Sprintf("%gx%g", size.Width, size.Height),
		},
		Job: job,
	})
}

func (s *recordingSurface) ColorEdit(id identity.ID, c graphics.Color) graphics.Color {
	if picked, ok := s.rec.picks[id]; ok {
		c = picked
	}
	s.rec.append(Op{Kind: "colorEdit", ID: id.String(), Depth: s.depth, Params: map[string]any{"color": c.Hex()}})
	return c
}

func (s *recordingSurface) ProgressBar(id identity.ID, progress float64, overlay string, width float64) {
	params := map[string]any{"progress": progress}
	if width > 0 {
		params["width"] = width
	}
	s.rec.append(Op{Kind: "progressBar", ID: id.String(), Depth: s.depth, Text: overlay, Params: params})
}

func (s *recordingSurface) ImageButton(id identity.ID, img surface.Image, size graphics.Size, selected bool) bool {
	source := "pixels"
	if img.Texture != nil {
		source = "texture"
	}
	clicked := s.rec.clicks[id]
	s.rec.append(Op{
		Kind:  "imageButton",
		ID:    id.String(),
		Depth: s.depth,
		Params: map[string]any{
			"source":   source,
			"size":     fmt.Sprintf("%gx%g", size.Width, size.Height),
			"selected": selected,
			"clicked":  clicked,
		},
	})
	return clicked
}

func (s *recordingSurface) Indent(id identity.ID, fn func(surface.Surface) error) error {
	return s.rec.nest("Indent", id, s.depth, nil, fn)
}

func (s *recordingSurface) Scope(id identity.ID, fn func(surface.Surface) error) error {
	return s.rec.nest("Scope", id, s.depth, nil, fn)
}

func (s *recordingSurface) Scroll(id identity.ID, fn func(surface.Surface) error) error {
	return s.rec.nest("Scroll", id, s.depth, nil, fn)
}

func (s *recordingSurface) Caches() *memo.Caches {
	return s.rec.caches
}
