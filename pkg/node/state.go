package node

import "fmt"

// State is a lifecycle state of an Instance.
type State int

const (
	StateDeclared State = iota
	StateComposed
	StateWarm
	StateActivating
	StateCool
)

func (s State) String() string {
	switch s {
	case StateDeclared:
		return "declared"
	case StateComposed:
		return "composed"
	case StateWarm:
		return "warm"
	case StateActivating:
		return "activating"
	case StateCool:
		return "cool"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
