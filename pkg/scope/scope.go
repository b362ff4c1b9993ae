// Package scope reconciles the variables nodes require and expose against
// the table of variables visible at compose time.
//
// A Table is persistent: With returns a new table and never mutates the
// receiver. Containers hand the same incoming table to each of their slots,
// so an exposure made inside one slot is visible to that slot's descendants
// and never to a sibling slot.
package scope

import (
	"sort"

	"github.com/xiaq/persistent/hash"
	"github.com/xiaq/persistent/hashmap"

	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/types"
)

// ExposedInfo is one name+type contract published to, or consumed from, a scope.
type ExposedInfo struct {
	Name    string
	Type    types.Type
	Help    string
	Mutable bool
	Global  bool
}

// Table maps variable names to the ExposedInfo visible in a scope.
type Table struct {
	m hashmap.Map
}

var emptyMap = hashmap.New(
	func(a, b any) bool { return a.(string) == b.(string) },
	func(k any) uint32 { return hash.String(k.(string)) },
)

// Empty returns a table with no variables.
func Empty() Table {
	return Table{m: emptyMap}
}

func (t Table) hm() hashmap.Map {
	if t.m == nil {
		return emptyMap
	}
	return t.m
}

// Lookup returns the info exposed under name.
func (t Table) Lookup(name string) (ExposedInfo, bool) {
	v, ok := t.hm().Index(name)
	if !ok {
		return ExposedInfo{}, false
	}
	return v.(ExposedInfo), true
}

// With returns a table that additionally holds infos. Later infos replace
// earlier entries of the same name.
func (t Table) With(infos ...ExposedInfo) Table {
	m := t.hm()
	for _, info := range infos {
		m = m.Assoc(info.Name, info)
	}
	return Table{m: m}
}

// Len returns the number of visible variables.
func (t Table) Len() int {
	return t.hm().Len()
}

// Infos returns the visible variables sorted by name.
func (t Table) Infos() []ExposedInfo {
	out := make([]ExposedInfo, 0, t.Len())
	for it := t.hm().Iterator(); it.HasElem(); it.Next() {
		_, v := it.Elem()
		out = append(out, v.(ExposedInfo))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Require checks that every required variable is visible with a compatible
// type. A required type of Any accepts whatever is exposed.
func Require(t Table, node string, reqs []ExposedInfo) error {
	for _, req := range reqs {
		have, ok := t.Lookup(req.Name)
		if !ok {
			return errors.MissingDependency(node, req.Name)
		}
		if !req.Type.Matches(have.Type) {
			return errors.TypeMismatch(node, "variable %q: required %v, exposed as %v", req.Name, req.Type, have.Type)
		}
	}
	return nil
}

// Expose adds infos to t. A same-named variable of identical type is left
// as is and not added twice; a differing type is a TypeMismatch. The
// returned slice lists the infos that were actually added.
func Expose(t Table, node string, infos []ExposedInfo) (Table, []ExposedInfo, error) {
	var added []ExposedInfo
	for _, info := range infos {
		if have, ok := t.Lookup(info.Name); ok {
			if !have.Type.Equal(info.Type) {
				return t, nil, errors.TypeMismatch(node, "variable %q: exposed as %v, already visible as %v", info.Name, info.Type, have.Type)
			}
			continue
		}
		t = t.With(info)
		added = append(added, info)
	}
	return t, added, nil
}
