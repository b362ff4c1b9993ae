package node

import "github.com/go-drift/flowgui/pkg/types"

// Param is a node parameter holding either a literal or a reference to a
// named variable. A reference resolves between Warmup and Cleanup.
type Param struct {
	value any
	vars  *Vars
	v     *Variable
}

// NewParam returns a parameter initialised to value.
func NewParam(value any) Param {
	return Param{value: value}
}

// VarParam returns a parameter referencing the variable called name.
func VarParam(name string) Param {
	return Param{value: types.VarRef(name)}
}

// SetParam replaces the configured literal or reference.
func (p *Param) SetParam(value any) {
	p.value = value
}

// Param returns the configured literal or reference.
func (p *Param) Param() any {
	return p.value
}

// IsVariable reports whether the parameter references a variable.
func (p *Param) IsVariable() bool {
	_, ok := p.value.(types.VarRef)
	return ok
}

// Name returns the referenced variable name, or "" for a literal.
func (p *Param) Name() string {
	ref, _ := p.value.(types.VarRef)
	return string(ref)
}

// SetName makes the parameter reference the variable called name.
func (p *Param) SetName(name string) {
	p.value = types.VarRef(name)
}

// Warmup resolves the reference, if any.
func (p *Param) Warmup(ctx *Context) {
	p.Cleanup()
	if name := p.Name(); name != "" && ctx != nil && ctx.Vars != nil {
		p.vars = ctx.Vars
		p.v = ctx.Vars.Reference(name)
	}
}

// Cleanup releases the reference.
func (p *Param) Cleanup() {
	if p.v != nil {
		p.vars.Release(p.v)
	}
	p.vars, p.v = nil, nil
}

// Get returns the current value: the variable's value for a resolved
// reference, nil for an unresolved one, otherwise the literal.
func (p *Param) Get() any {
	if p.v != nil {
		return p.v.Value
	}
	if p.IsVariable() {
		return nil
	}
	return p.value
}

// Set writes through to the referenced variable, or replaces the literal.
func (p *Param) Set(v any) {
	if p.v != nil {
		p.v.Value = v
		return
	}
	if !p.IsVariable() {
		p.value = v
	}
}
