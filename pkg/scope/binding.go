package scope

import (
	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/types"
)

// Binding ties a node parameter bound to a named variable to the type the
// node reads and writes through it.
//
// Reconcile applies the existing-name short-circuit: when the name is
// already visible the binding cooperates with the outer owner instead of
// exposing it again, after checking the types agree exactly.
type Binding struct {
	Name string
	Type types.Type
	Help string

	shouldExpose bool
}

// Reconcile decides whether the binding exposes a new variable. An empty
// name means the parameter holds a literal and nothing is exposed.
func (b *Binding) Reconcile(t Table, node string) error {
	b.shouldExpose = false
	if b.Name == "" {
		return nil
	}
	if have, ok := t.Lookup(b.Name); ok {
		if !have.Type.Equal(b.Type) {
			return errors.TypeMismatch(node, "variable %q: %v required, found %v", b.Name, b.Type, have.Type)
		}
		return nil
	}
	b.shouldExpose = true
	return nil
}

// ShouldExpose reports the result of the last Reconcile.
func (b *Binding) ShouldExpose() bool {
	return b.shouldExpose
}

// Exposed returns the variables the binding publishes: the binding itself
// when the last Reconcile decided to expose, nothing otherwise.
func (b *Binding) Exposed() []ExposedInfo {
	if !b.shouldExpose {
		return nil
	}
	return []ExposedInfo{{Name: b.Name, Type: b.Type, Help: b.Help, Mutable: true}}
}
