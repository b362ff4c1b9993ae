package gui

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/highlight"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/theme"
)

// Console shows its string input as colourised log output in a scrollable,
// read-only box.
type Console struct {
	leaf
	style map[string]any
	theme theme.LogTheme
}

func NewConsole() *Console {
	return &Console{leaf: newLeaf(), theme: theme.DefaultLogTheme()}
}

func (c *Console) Activate(ctx *node.Context, input any) (any, error) {
	surf, err := c.parent()
	if err != nil {
		return nil, err
	}
	text, _ := input.(string)
	job := highlight.CachedConsole(surf.Caches(), c.sub(0), c.theme, text)
	err = surf.Scroll(c.sub(1), func(s surface.Surface) error {
		s.TextEdit(c.sub(2), job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

// SetParam parses the Style table eagerly so a bad style fails when it is
// set rather than on the first frame.
func (c *Console) SetParam(index int, value any) error {
	if index != 0 {
		return fmt.Errorf("invalid parameter index %d", index)
	}
	if value == nil {
		c.style, c.theme = nil, theme.DefaultLogTheme()
		return nil
	}
	table, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected a table, got %T", value)
	}
	th, err := theme.FromTable(table)
	if err != nil {
		return err
	}
	c.style, c.theme = table, th
	return nil
}

func (c *Console) GetParam(index int) any {
	if index == 0 && c.style != nil {
		return c.style
	}
	return nil
}

// CodeEditor shows its string input as syntax highlighted source code.
type CodeEditor struct {
	leaf
	language string
	theme    theme.CodeTheme
	themeArg string
}

func NewCodeEditor() *CodeEditor {
	return &CodeEditor{leaf: newLeaf(), theme: theme.DarkCodeTheme()}
}

func (e *CodeEditor) Activate(ctx *node.Context, input any) (any, error) {
	surf, err := e.parent()
	if err != nil {
		return nil, err
	}
	code, _ := input.(string)
	job := highlight.Code(surf.Caches(), e.theme, code, e.language)
	err = surf.Scroll(e.sub(0), func(s surface.Surface) error {
		s.TextEdit(e.sub(1), job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return input, nil
}

func (e *CodeEditor) SetParam(index int, value any) error {
	switch index {
	case 0:
		lang, err := stringParam(value, "")
		if err != nil {
			return err
		}
		e.language = lang
		return nil
	case 1:
		name, err := stringParam(value, "")
		if err != nil {
			return err
		}
		th, err := theme.ParseCodeTheme(name)
		if err != nil {
			return err
		}
		e.theme, e.themeArg = th, name
		return nil
	}
	return fmt.Errorf("invalid parameter index %d", index)
}

func (e *CodeEditor) GetParam(index int) any {
	switch index {
	case 0:
		if e.language == "" {
			return nil
		}
		return e.language
	case 1:
		if e.themeArg == "" {
			return nil
		}
		return e.themeArg
	}
	return nil
}
