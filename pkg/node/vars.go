package node

import (
	"sort"
	"sync"
)

// Variable is a named runtime value shared by the nodes referencing it.
type Variable struct {
	Name  string
	Value any
	refs  int
}

// Vars is the variable store of one running graph.
type Vars struct {
	mu sync.Mutex
	m  map[string]*Variable
}

// NewVars returns an empty store.
func NewVars() *Vars {
	return &Vars{m: make(map[string]*Variable)}
}

// Reference returns the variable called name, creating it if needed, and
// counts the reference.
func (v *Vars) Reference(name string) *Variable {
	v.mu.Lock()
	defer v.mu.Unlock()
	vr, ok := v.m[name]
	if !ok {
		vr = &Variable{Name: name}
		v.m[name] = vr
	}
	vr.refs++
	return vr
}

// Release drops a reference. The variable is removed once unreferenced.
func (v *Vars) Release(vr *Variable) {
	if vr == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	vr.refs--
	if vr.refs <= 0 && v.m[vr.Name] == vr {
		delete(v.m, vr.Name)
	}
}

// Lookup returns the variable called name.
func (v *Vars) Lookup(name string) (*Variable, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	vr, ok := v.m[name]
	return vr, ok
}

// Names returns the names of live variables, sorted.
func (v *Vars) Names() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.m))
	for name := range v.m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
