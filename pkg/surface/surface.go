// Package surface defines the drawing surfaces nodes render into, the shared
// handle to a root rendering context, and the parent stack that hands the
// innermost surface down to nested nodes during one activation pass.
package surface

import (
	"image"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/identity"
	"github.com/go-drift/flowgui/pkg/memo"
	"github.com/go-drift/flowgui/pkg/types"
)

// Surface is one drawing region inside a root context: a panel, window,
// area, scope or indentation block.
type Surface interface {
	// Label draws a single line of plain text.
	Label(id identity.ID, text string)
	// TextEdit draws a read-only multi-line text box holding job.
	TextEdit(id identity.ID, job *graphics.LayoutJob)
	// ColorEdit draws a colour picker and returns the selected colour.
	ColorEdit(id identity.ID, c graphics.Color) graphics.Color
	// ProgressBar draws a bar filled to progress, in [0, 1]. overlay may be
	// empty; width <= 0 means the available width.
	ProgressBar(id identity.ID, progress float64, overlay string, width float64)
	// ImageButton draws a clickable image and reports whether it was clicked.
	ImageButton(id identity.ID, img Image, size graphics.Size, selected bool) bool
	// Indent runs fn against an indented child surface.
	Indent(id identity.ID, fn func(Surface) error) error
	// Scope runs fn against a child surface whose style changes stay local.
	Scope(id identity.ID, fn func(Surface) error) error
	// Scroll runs fn against a scrollable child surface.
	Scroll(id identity.ID, fn func(Surface) error) error
	// Caches returns the memo registry of the root context.
	Caches() *memo.Caches
}

// Context is one root immediate-mode rendering context.
type Context interface {
	BeginFrame()
	EndFrame()
	TopPanel(id identity.ID, fn func(Surface) error) error
	BottomPanel(id identity.ID, fn func(Surface) error) error
	LeftPanel(id identity.ID, fn func(Surface) error) error
	RightPanel(id identity.ID, fn func(Surface) error) error
	// CentralPanel fills whatever space the side panels left over.
	CentralPanel(fn func(Surface) error) error
	Window(id identity.ID, opts WindowOptions, fn func(Surface) error) error
	Area(id identity.ID, opts AreaOptions, fn func(Surface) error) error
	Caches() *memo.Caches
	ScreenSize() graphics.Size
	Close() error
}

// Backend creates a root context. A GUI root calls it once during warmup.
type Backend func() (Context, error)

// Image is the source of an image button: decoded pixels or a texture
// already resident on the renderer. Exactly one is set.
type Image struct {
	Pixels  image.Image
	Texture *types.TextureRef
}

// Size returns the natural size of the image.
func (img Image) Size() graphics.Size {
	switch {
	case img.Texture != nil:
		return graphics.Size{Width: float64(img.Texture.Width), Height: float64(img.Texture.Height)}
	case img.Pixels != nil:
		b := img.Pixels.Bounds()
		return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	return graphics.Size{}
}

// WindowOptions configures a floating window.
type WindowOptions struct {
	Title    string
	Position *graphics.Offset
	Width    float64
	Height   float64
	Flags    WindowFlags
}

// AreaOptions configures a free-floating area. Anchor, when set, places the
// area relative to a screen edge and Position becomes an offset from it.
type AreaOptions struct {
	Position graphics.Offset
	Anchor   *Anchor
}
