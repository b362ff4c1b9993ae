package surface

import (
	"github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/identity"
)

// Entry is one pushed surface together with the scope that pushed it.
type Entry struct {
	Scope   identity.ID
	Surface Surface
}

// Stack holds the surfaces of the containers currently activating, the
// innermost on top. It belongs to one GUI root and one activation pass at a
// time and is not safe for concurrent use.
type Stack struct {
	entries []Entry
}

// Push makes surf the current surface.
func (s *Stack) Push(scope identity.ID, surf Surface) {
	s.entries = append(s.entries, Entry{Scope: scope, Surface: surf})
}

// Pop removes and returns the top entry.
func (s *Stack) Pop() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = Entry{}
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// Current returns the innermost surface, or a NoActiveSurface error when
// nothing is pushed.
func (s *Stack) Current() (Surface, error) {
	if len(s.entries) == 0 {
		return nil, errors.NoActiveSurface("")
	}
	return s.entries[len(s.entries)-1].Surface, nil
}

// Depth returns the number of pushed surfaces.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// With pushes surf, runs fn and restores the previous depth on every exit
// path, including a panic inside fn.
func (s *Stack) With(scope identity.ID, surf Surface, fn func() error) error {
	depth := len(s.entries)
	s.Push(scope, surf)
	defer s.truncate(depth)
	return fn()
}

func (s *Stack) truncate(depth int) {
	for len(s.entries) > depth {
		s.Pop()
	}
}
