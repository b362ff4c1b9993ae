package gui

import (
	"fmt"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/surface"
)

func stringParam(value any, def string) (string, error) {
	switch v := value.(type) {
	case nil:
		return def, nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("expected a string, got %T", value)
}

func floatParam(value any, def float64) (float64, error) {
	switch v := value.(type) {
	case nil:
		return def, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", value)
}

func offsetParam(value any) (*graphics.Offset, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case [2]float64:
		return &graphics.Offset{X: v[0], Y: v[1]}, nil
	}
	return nil, fmt.Errorf("expected a position, got %T", value)
}

func flagsParam(value any) (surface.WindowFlags, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case surface.WindowFlags:
		return v, nil
	case []any:
		var flags surface.WindowFlags
		for _, e := range v {
			f, ok := e.(surface.WindowFlags)
			if !ok {
				return 0, fmt.Errorf("expected window flags, got %T", e)
			}
			flags |= f
		}
		return flags, nil
	}
	return 0, fmt.Errorf("expected window flags, got %T", value)
}
