package node

import (
	"errors"

	flowerrors "github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/types"
)

// Sequence is an ordered list of instances run one after another, each
// receiving the previous one's output. Containers hold their nested
// contents as sequences.
type Sequence struct {
	// Owner names the node holding the sequence in activation errors.
	Owner string

	items      []*Instance
	composed   bool
	outputType types.Type
	required   []scope.ExposedInfo
	exposed    []scope.ExposedInfo
}

// NewSequence returns a sequence of items.
func NewSequence(items ...*Instance) *Sequence {
	return &Sequence{items: items}
}

// Type makes a sequence a Shards-typed parameter value.
func (s *Sequence) Type() types.Type {
	return types.Shards
}

// Add appends an instance.
func (s *Sequence) Add(inst *Instance) {
	s.items = append(s.items, inst)
}

// Instances returns the instances in order.
func (s *Sequence) Instances() []*Instance {
	if s == nil {
		return nil
	}
	return s.items
}

// Len returns the number of instances.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether there is nothing to run.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}

// OutputType returns the type computed by Compose.
func (s *Sequence) OutputType() types.Type {
	return s.outputType
}

// Exposed returns every variable the sequence's instances exposed.
func (s *Sequence) Exposed() []scope.ExposedInfo {
	if s == nil {
		return nil
	}
	return s.exposed
}

// Required returns the variables the instances required from outside the
// sequence, excluding those an earlier instance exposed.
func (s *Sequence) Required() []scope.ExposedInfo {
	if s == nil {
		return nil
	}
	return s.required
}

// Compose composes each instance in order. Every instance sees the
// variables exposed by the instances before it. An empty sequence passes
// its input type through.
func (s *Sequence) Compose(data InstanceData) (types.Type, error) {
	t := data.InputType
	shared := data.Shared
	internal := map[string]bool{}
	seen := map[string]bool{}
	s.required, s.exposed = nil, nil

	for _, inst := range s.items {
		out, err := inst.Compose(InstanceData{InputType: t, Shared: shared})
		if err != nil {
			return types.None, err
		}
		for _, req := range inst.Required() {
			if !internal[req.Name] && !seen[req.Name] {
				seen[req.Name] = true
				s.required = append(s.required, req)
			}
		}
		for _, info := range inst.Exposed() {
			internal[info.Name] = true
			s.exposed = append(s.exposed, info)
		}
		shared = shared.With(inst.Exposed()...)
		t = out
	}
	s.outputType = t
	s.composed = true
	return t, nil
}

// Warmup warms each instance in order. If one fails, those already warmed
// are cleaned up in reverse order before the error is returned.
func (s *Sequence) Warmup(ctx *Context) error {
	for n, inst := range s.Instances() {
		if err := inst.Warmup(ctx); err != nil {
			for j := n - 1; j >= 0; j-- {
				if cerr := s.items[j].Cleanup(); cerr != nil {
					ctx.Logger.Error(cerr, "rollback cleanup failed", "node", s.items[j].Name())
				}
			}
			return err
		}
	}
	return nil
}

// Activate runs the instances in order, feeding each the previous output.
// The first failure stops the pass and is returned as an activation error
// naming the failing child.
func (s *Sequence) Activate(ctx *Context, input any) (any, error) {
	v := input
	for _, inst := range s.Instances() {
		out, err := inst.Activate(ctx, v)
		if err != nil {
			return nil, flowerrors.Activation(s.Owner, inst.Name(), err)
		}
		v = out
	}
	return v, nil
}

// Cleanup cleans every instance up in reverse order and joins the errors.
func (s *Sequence) Cleanup() error {
	items := s.Instances()
	var errs []error
	for j := len(items) - 1; j >= 0; j-- {
		if err := items[j].Cleanup(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
