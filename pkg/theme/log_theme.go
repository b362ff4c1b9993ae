package theme

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/graphics"
)

// Category is a semantic class of console output.
type Category int

const (
	CategoryTrace Category = iota
	CategoryDebug
	CategoryError
	CategoryWarning
	CategoryInfo
	CategoryText

	categoryCount
)

var categoryKeys = [categoryCount]string{"trace", "debug", "error", "warning", "info", "text"}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, categoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Key returns the configuration key of the category.
func (c Category) Key() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryKeys[c]
}

func (c Category) String() string {
	return c.Key()
}

// Prefix returns the line prefix marking the category in console text.
// Plain text has none.
func (c Category) Prefix() string {
	if c == CategoryText || c < 0 || c >= categoryCount {
		return ""
	}
	return "[" + categoryKeys[c] + "]"
}

// LogTheme maps each category to a text format.
type LogTheme struct {
	Formats [categoryCount]graphics.TextFormat
}

// DefaultLogTheme returns the built-in console theme.
func DefaultLogTheme() LogTheme {
	font := graphics.Monospace(12)
	return LogTheme{Formats: [categoryCount]graphics.TextFormat{
		CategoryTrace:   graphics.SimpleFormat(font, graphics.ColorDarkGray),
		CategoryDebug:   graphics.SimpleFormat(font, graphics.ColorLightBlue),
		CategoryError:   graphics.SimpleFormat(font, graphics.ColorLightRed),
		CategoryWarning: graphics.SimpleFormat(font, graphics.ColorLightYellow),
		CategoryInfo:    graphics.SimpleFormat(font, graphics.ColorLightGreen),
		CategoryText:    graphics.SimpleFormat(font, graphics.ColorGray),
	}}
}

// Format returns the format of c.
func (t LogTheme) Format(c Category) graphics.TextFormat {
	return t.Formats[c]
}

// FromTable overrides the defaults with a style table of the shape
//
//	{"error": {"color": "#ff0000", "italics": true}, ...}
//
// Unknown category and field keys are ignored. Missing keys keep their
// defaults.
func FromTable(table map[string]any) (LogTheme, error) {
	t := DefaultLogTheme()
	for _, c := range Categories() {
		raw, ok := table[c.Key()]
		if !ok || raw == nil {
			continue
		}
		fields, ok := asTable(raw)
		if !ok {
			return t, fmt.Errorf("style %q: expected a table, got %T", c.Key(), raw)
		}
		f, err := UpdateTextFormat(t.Formats[c], fields)
		if err != nil {
			return t, fmt.Errorf("style %q: %w", c.Key(), err)
		}
		t.Formats[c] = f
	}
	return t, nil
}

// UpdateTextFormat applies the recognized fields of a style table to f:
// color, italics, underline, font_size and font_family.
func UpdateTextFormat(f graphics.TextFormat, fields map[string]any) (graphics.TextFormat, error) {
	if v, ok := fields["color"]; ok {
		c, err := parseColor(v)
		if err != nil {
			return f, fmt.Errorf("color: %w", err)
		}
		f.Color = c
	}
	if v, ok := fields["italics"]; ok {
		b, ok := v.(bool)
		if !ok {
			return f, fmt.Errorf("italics: expected bool, got %T", v)
		}
		f.Italics = b
	}
	if v, ok := fields["underline"]; ok {
		b, ok := v.(bool)
		if !ok {
			return f, fmt.Errorf("underline: expected bool, got %T", v)
		}
		f.Underline = b
	}
	if v, ok := fields["font_size"]; ok {
		size, ok := asFloat(v)
		if !ok || size <= 0 {
			return f, fmt.Errorf("font_size: expected a positive number, got %v", v)
		}
		f.Font.Size = size
	}
	if v, ok := fields["font_family"]; ok {
		s, _ := v.(string)
		family, ok := graphics.ParseFontFamily(s)
		if !ok {
			return f, fmt.Errorf("font_family: unknown family %v", v)
		}
		f.Font.Family = family
	}
	return f, nil
}

func asTable(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// parseColor accepts a Color, a hex string or a list of three or four
// 0-255 components.
func parseColor(v any) (graphics.Color, error) {
	switch c := v.(type) {
	case graphics.Color:
		return c, nil
	case string:
		return graphics.ParseHex(c)
	case []any:
		if len(c) != 3 && len(c) != 4 {
			return 0, fmt.Errorf("expected 3 or 4 components, got %d", len(c))
		}
		comps := [4]uint8{0, 0, 0, 255}
		for i, raw := range c {
			n, ok := asFloat(raw)
			if !ok || n < 0 || n > 255 {
				return 0, fmt.Errorf("component %d out of range: %v", i, raw)
			}
			comps[i] = uint8(n)
		}
		return graphics.RGBA8(comps[0], comps[1], comps[2], comps[3]), nil
	}
	return 0, fmt.Errorf("unsupported value %T", v)
}
