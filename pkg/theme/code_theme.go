package theme

import (
	"fmt"
	"strings"

	"github.com/go-drift/flowgui/pkg/graphics"
)

// Brightness indicates whether a theme is light or dark.
type Brightness int

const (
	BrightnessDark Brightness = iota
	BrightnessLight
)

func (b Brightness) String() string {
	if b == BrightnessLight {
		return "light"
	}
	return "dark"
}

// CodeStyle is the closed set of syntax colour schemes.
type CodeStyle int

const (
	CodeStyleMocha CodeStyle = iota
	CodeStyleEighties
	CodeStyleOcean
	CodeStyleOceanLight
	CodeStyleGitHub
	CodeStyleSolarizedDark
	CodeStyleSolarizedLight
)

var codeStyleNames = map[CodeStyle]string{
	CodeStyleMocha:          "mocha",
	CodeStyleEighties:       "eighties",
	CodeStyleOcean:          "ocean",
	CodeStyleOceanLight:     "ocean-light",
	CodeStyleGitHub:         "github",
	CodeStyleSolarizedDark:  "solarized-dark",
	CodeStyleSolarizedLight: "solarized-light",
}

func (s CodeStyle) String() string {
	if name, ok := codeStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CodeStyle(%d)", int(s))
}

// CodeTheme selects the colours of highlighted code.
type CodeTheme struct {
	Brightness Brightness
	Style      CodeStyle
}

// DarkCodeTheme is the default theme.
func DarkCodeTheme() CodeTheme {
	return CodeTheme{Brightness: BrightnessDark, Style: CodeStyleMocha}
}

// LightCodeTheme is the default theme for light backgrounds.
func LightCodeTheme() CodeTheme {
	return CodeTheme{Brightness: BrightnessLight, Style: CodeStyleSolarizedLight}
}

// IsDark reports whether the theme targets a dark background.
func (t CodeTheme) IsDark() bool {
	return t.Brightness == BrightnessDark
}

// PlainFormat is the format of code that could not be highlighted.
func (t CodeTheme) PlainFormat() graphics.TextFormat {
	if t.IsDark() {
		return graphics.SimpleFormat(graphics.Monospace(14), graphics.ColorLightGray)
	}
	return graphics.SimpleFormat(graphics.Monospace(14), graphics.ColorDarkGray)
}

// ParseCodeTheme accepts "dark", "light" or a style name. Light styles get a
// light brightness.
func ParseCodeTheme(s string) (CodeTheme, error) {
	switch strings.ToLower(s) {
	case "", "dark":
		return DarkCodeTheme(), nil
	case "light":
		return LightCodeTheme(), nil
	}
	for style, name := range codeStyleNames {
		if strings.EqualFold(name, s) {
			b := BrightnessDark
			if style == CodeStyleOceanLight || style == CodeStyleGitHub || style == CodeStyleSolarizedLight {
				b = BrightnessLight
			}
			return CodeTheme{Brightness: b, Style: style}, nil
		}
	}
	return CodeTheme{}, fmt.Errorf("unknown code theme %q", s)
}
