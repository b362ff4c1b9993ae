package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/flowgui/pkg/rendering"
)

// Finder locates ops in a frame's display list.
type Finder interface {
	// Evaluate returns the indices of all matching ops, in recording order.
	Evaluate(ops []rendering.Op) []int
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	ops    []rendering.Op
	finder Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() rendering.Op {
	if len(r.ops) == 0 {
		panic(fmt.Sprintf("Finder found no ops: %s", r.description()))
	}
	return r.ops[0]
}

// FirstOrZero returns the first match and whether there was one.
func (r FinderResult) FirstOrZero() (rendering.Op, bool) {
	if len(r.ops) == 0 {
		return rendering.Op{}, false
	}
	return r.ops[0], true
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) rendering.Op {
	if index < 0 || index >= len(r.ops) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.ops), r.description()))
	}
	return r.ops[index]
}

// All returns all matches in recording order.
func (r FinderResult) All() []rendering.Op {
	return r.ops
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.ops)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.ops) > 0
}

// Texts returns the text of every match.
func (r FinderResult) Texts() []string {
	out := make([]string, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.Text
	}
	return out
}

// --- Concrete finders ---

// predicateFinder matches ops satisfying a predicate.
type predicateFinder struct {
	fn   func(rendering.Op) bool
	desc string
}

func (f *predicateFinder) Evaluate(ops []rendering.Op) []int {
	var out []int
	for i, op := range ops {
		if f.fn(op) {
			out = append(out, i)
		}
	}
	return out
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches ops satisfying fn.
func ByPredicate(fn func(rendering.Op) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByKind returns a finder that matches ops of the given kind, such as
// "label" or "beginWindow".
func ByKind(kind string) Finder {
	return &predicateFinder{
		fn:   func(op rendering.Op) bool { return op.Kind == kind },
		desc: fmt.Sprintf("ByKind(%s)", kind),
	}
}

// ByID returns a finder that matches ops drawn with the given identity.
func ByID(id string) Finder {
	return &predicateFinder{
		fn:   func(op rendering.Op) bool { return op.ID == id },
		desc: fmt.Sprintf("ByID(%s)", id),
	}
}

// ByText returns a finder that matches ops whose text equals text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(op rendering.Op) bool { return op.Text == text },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches ops whose text contains
// substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn:   func(op rendering.Op) bool { return strings.Contains(op.Text, substring) },
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByParam returns a finder that matches ops whose parameter key formats
// as value.
func ByParam(key string, value any) Finder {
	want := fmt.Sprint(value)
	return &predicateFinder{
		fn: func(op rendering.Op) bool {
			v, ok := op.Params[key]
			return ok && fmt.Sprint(v) == want
		},
		desc: fmt.Sprintf("ByParam(%s=%v)", key, value),
	}
}

// descendantFinder finds ops matching 'matching' that were recorded inside
// a surface opened by an op matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(ops []rendering.Op) []int {
	var out []int
	seen := make(map[int]bool)
	for _, begin := range f.of.Evaluate(ops) {
		end := closing(ops, begin)
		if end <= begin+1 {
			continue
		}
		for _, i := range f.matching.Evaluate(ops[begin+1 : end]) {
			i += begin + 1
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches ops satisfying 'matching' that
// were drawn inside a panel, window, area, scope, indent or scroll opened by
// an op matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// closing returns the index of the end op closing the begin op at i, or i
// when ops[i] opens no surface.
func closing(ops []rendering.Op, i int) int {
	name, ok := strings.CutPrefix(ops[i].Kind, "begin")
	if !ok {
		return i
	}
	for j := i + 1; j < len(ops); j++ {
		if ops[j].Kind == "end"+name && ops[j].Depth == ops[i].Depth && ops[j].ID == ops[i].ID {
			return j
		}
	}
	return len(ops)
}
