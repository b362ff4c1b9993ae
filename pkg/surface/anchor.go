package surface

import (
	"fmt"
	"strings"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/types"
)

// Enum type ids of the placement enums, under the frag vendor code.
var (
	VendorID        = types.FourCC("frag")
	AnchorType      = types.Enum(VendorID, types.FourCC("egAn"))
	WindowFlagsType = types.Enum(VendorID, types.FourCC("egWF"))
)

// Anchor is one of nine screen positions an overlay can be pinned to. The
// high nibble is the vertical alignment and the low nibble the horizontal
// one: 0 start, 1 center, 2 end.
type Anchor uint8

const (
	AnchorTopLeft     Anchor = 0x00
	AnchorTop         Anchor = 0x01
	AnchorTopRight    Anchor = 0x02
	AnchorLeft        Anchor = 0x10
	AnchorCenter      Anchor = 0x11
	AnchorRight       Anchor = 0x12
	AnchorBottomLeft  Anchor = 0x20
	AnchorBottom      Anchor = 0x21
	AnchorBottomRight Anchor = 0x22
)

var anchorNames = map[Anchor]string{
	AnchorTopLeft:     "TopLeft",
	AnchorTop:         "Top",
	AnchorTopRight:    "TopRight",
	AnchorLeft:        "Left",
	AnchorCenter:      "Center",
	AnchorRight:       "Right",
	AnchorBottomLeft:  "BottomLeft",
	AnchorBottom:      "Bottom",
	AnchorBottomRight: "BottomRight",
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Anchor(%#02x)", uint8(a))
}

// Type returns AnchorType.
func (Anchor) Type() types.Type { return AnchorType }

// Valid reports whether a is one of the nine positions.
func (a Anchor) Valid() bool {
	_, ok := anchorNames[a]
	return ok
}

// ParseAnchor parses an anchor name, case-insensitively.
func ParseAnchor(s string) (Anchor, error) {
	for a, name := range anchorNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown anchor %q", s)
}

// Pivot returns the fraction of the overlay's own size (and of the screen)
// the anchor refers to, in [0, 1] on each axis.
func (a Anchor) Pivot() (x, y float64) {
	return float64(a&0x0f) / 2, float64(a>>4) / 2
}

// Place returns the top-left corner of an overlay of the given size, pinned
// to the anchor point of screen and shifted by offset.
func (a Anchor) Place(offset graphics.Offset, size, screen graphics.Size) graphics.Offset {
	px, py := a.Pivot()
	return graphics.Offset{
		X: screen.Width*px - size.Width*px + offset.X,
		Y: screen.Height*py - size.Height*py + offset.Y,
	}
}

// WindowFlags adjust a window's chrome.
type WindowFlags uint32

const (
	WindowNoTitleBar WindowFlags = 1 << iota
	WindowNoResize
	WindowNoScrollbars
	WindowNoCollapse
)

var windowFlagNames = []struct {
	flag WindowFlags
	name string
}{
	{WindowNoTitleBar, "NoTitleBar"},
	{WindowNoResize, "NoResize"},
	{WindowNoScrollbars, "NoScrollbars"},
	{WindowNoCollapse, "NoCollapse"},
}

// Type returns WindowFlagsType.
func (WindowFlags) Type() types.Type { return WindowFlagsType }

// Has reports whether all bits of flag are set.
func (f WindowFlags) Has(flag WindowFlags) bool {
	return f&flag == flag
}

func (f WindowFlags) String() string {
	var parts []string
	for _, n := range windowFlagNames {
		if f.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// ParseWindowFlag parses one flag name, case-insensitively.
func ParseWindowFlag(s string) (WindowFlags, error) {
	for _, n := range windowFlagNames {
		if strings.EqualFold(n.name, s) {
			return n.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown window flag %q", s)
}
