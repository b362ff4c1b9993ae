package engine

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/flowgui/pkg/graphics"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/surface"
	"github.com/go-drift/flowgui/pkg/types"
)

// WireSpec is the YAML description of a wire:
//
//	name: demo
//	input: String
//	nodes:
//	  - kind: GUI
//	    params:
//	      Contents:
//	        - kind: UI.CentralPanel
//	          params:
//	            Contents:
//	              - kind: UI.Label
//
// A parameter value of the form {var: name} references a variable. A list
// of nodes is accepted wherever the parameter takes shards.
type WireSpec struct {
	Name  string     `yaml:"name"`
	Input string     `yaml:"input"`
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec is one node of a wire.
type NodeSpec struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

// ParseWireSpec decodes a wire description.
func ParseWireSpec(data []byte) (*WireSpec, error) {
	var spec WireSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse wire: %w", err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("parse wire: missing name")
	}
	return &spec, nil
}

// LoadWireSpec reads and decodes a wire description file.
func LoadWireSpec(path string) (*WireSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWireSpec(data)
}

var namedTypes = map[string]types.Type{
	"none":    types.None,
	"any":     types.Any,
	"bool":    types.Bool,
	"int":     types.Int,
	"float":   types.Float,
	"float2":  types.Float2,
	"string":  types.String,
	"color":   types.Color,
	"image":   types.Image,
	"texture": types.Texture,
	"table":   types.Table,
}

// ParseType resolves the name of a basic type. The empty name is None.
func ParseType(name string) (types.Type, error) {
	if name == "" {
		return types.None, nil
	}
	t, ok := namedTypes[strings.ToLower(name)]
	if !ok {
		return types.None, fmt.Errorf("unknown type %q", name)
	}
	return t, nil
}

// decoder turns YAML parameter values into the runtime values the
// parameter accepts.
type decoder struct {
	build func(specs []NodeSpec) (*node.Sequence, error)
}

func (d *decoder) value(info node.ParamInfo, raw any) (any, error) {
	accepts := func(t types.Type) bool { return info.Types.Accepts(t) }

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		if name, ok := varRef(v); ok {
			return types.VarRef(name), nil
		}
		return v, nil
	case string:
		switch {
		case accepts(surface.AnchorType):
			return surface.ParseAnchor(v)
		case accepts(surface.WindowFlagsType):
			return parseFlags(strings.Split(v, "|"))
		case accepts(types.Color) && strings.HasPrefix(v, "#"):
			return graphics.ParseHex(v)
		}
		return v, nil
	case int:
		if !accepts(types.Int) && accepts(types.Float) {
			return float64(v), nil
		}
		return v, nil
	case []any:
		return d.list(info, v)
	}
	return raw, nil
}

func (d *decoder) list(info node.ParamInfo, raw []any) (any, error) {
	accepts := func(t types.Type) bool { return info.Types.Accepts(t) }

	if accepts(types.Shards) {
		specs, err := nodeSpecs(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", info.Name, err)
		}
		return d.build(specs)
	}
	if accepts(types.Float2) && len(raw) == 2 {
		var out [2]float64
		for i, e := range raw {
			f, ok := number(e)
			if !ok {
				return nil, fmt.Errorf("parameter %s: expected numbers, got %T", info.Name, e)
			}
			out[i] = f
		}
		return out, nil
	}
	if accepts(surface.WindowFlagsType) || accepts(types.SeqOf(surface.WindowFlagsType)) {
		names := make([]string, len(raw))
		for i, e := range raw {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %s: expected flag names, got %T", info.Name, e)
			}
			names[i] = s
		}
		return parseFlags(names)
	}
	return raw, nil
}

func varRef(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	name, ok := m["var"].(string)
	return name, ok && name != ""
}

func nodeSpecs(raw []any) ([]NodeSpec, error) {
	specs := make([]NodeSpec, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("expected a node, got %T", e)
		}
		kind, _ := m["kind"].(string)
		if kind == "" {
			return nil, fmt.Errorf("node without kind")
		}
		spec := NodeSpec{Kind: kind}
		if p, ok := m["params"]; ok && p != nil {
			params, ok := p.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: params must be a mapping", kind)
			}
			spec.Params = params
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseFlags(names []string) (surface.WindowFlags, error) {
	var flags surface.WindowFlags
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "none") {
			continue
		}
		f, err := surface.ParseWindowFlag(name)
		if err != nil {
			return 0, err
		}
		flags |= f
	}
	return flags, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
