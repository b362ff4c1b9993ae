// Package errors provides structured error handling for flowgui nodes.
//
// Every failure raised by the node layer is a *NodeError carrying the phase
// that failed (Op), a Kind, the identity of the offending node and, for
// container activations, the nested child that failed. Kinds double as
// sentinels so callers can test a whole chain with the standard library:
//
//	if errors.Is(err, flowerrors.ErrNoActiveSurface) { ... }
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindTypeMismatch indicates conflicting declared and exposed types at compose time.
	KindTypeMismatch
	// KindMissingDependency indicates a required variable is not reachable at compose time.
	KindMissingDependency
	// KindNoActiveSurface indicates a drawing node found the parent stack empty.
	KindNoActiveSurface
	// KindActivation indicates a nested child failed during activation.
	KindActivation
	// KindWarmup indicates runtime resource acquisition failed.
	KindWarmup
	// KindParameter indicates an invalid parameter index or value.
	KindParameter
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindTypeMismatch:
		return "type-mismatch"
	case KindMissingDependency:
		return "missing-dependency"
	case KindNoActiveSurface:
		return "no-active-surface"
	case KindActivation:
		return "activation"
	case KindWarmup:
		return "warmup"
	case KindParameter:
		return "parameter"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any NodeError of the same kind.
var (
	ErrTypeMismatch      = &NodeError{Kind: KindTypeMismatch}
	ErrMissingDependency = &NodeError{Kind: KindMissingDependency}
	ErrNoActiveSurface   = &NodeError{Kind: KindNoActiveSurface}
	ErrActivation        = &NodeError{Kind: KindActivation}
	ErrWarmup            = &NodeError{Kind: KindWarmup}
	ErrParameter         = &NodeError{Kind: KindParameter}
	ErrPanic             = &NodeError{Kind: KindPanic}
)

// NodeError represents a structured error raised by a node.
type NodeError struct {
	// Op is the lifecycle phase or operation that failed (e.g., "compose").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Node identifies the failing node, usually "<kind>#<index>".
	Node string
	// Child names the nested child that failed, for activation errors.
	Child string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *NodeError) Error() string {
	msg := e.Op
	if msg == "" {
		msg = "node"
	}
	msg += " [" + e.Kind.String() + "]"
	if e.Node != "" {
		msg += " node=" + e.Node
	}
	if e.Child != "" {
		msg += " child=" + e.Child
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *NodeError) Is(target error) bool {
	t, ok := target.(*NodeError)
	if !ok {
		return false
	}
	if t.Op != "" || t.Node != "" || t.Err != nil {
		return t == e
	}
	return t.Kind == e.Kind
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "node.Activate").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// TypeMismatch reports a compose-time type conflict.
func TypeMismatch(node, format string, args ...any) *NodeError {
	return &NodeError{Op: "compose", Kind: KindTypeMismatch, Node: node, Err: fmt.Errorf(format, args...)}
}

// MissingDependency reports a required variable that is not visible.
func MissingDependency(node, name string) *NodeError {
	return &NodeError{Op: "compose", Kind: KindMissingDependency, Node: node, Err: fmt.Errorf("required variable %q not found", name)}
}

// NoActiveSurface reports a drawing node activated outside any container.
func NoActiveSurface(node string) *NodeError {
	return &NodeError{Op: "activate", Kind: KindNoActiveSurface, Node: node, Err: fmt.Errorf("no UI parent")}
}

// Activation wraps the failure of a nested child.
func Activation(node, child string, err error) *NodeError {
	return &NodeError{Op: "activate", Kind: KindActivation, Node: node, Child: child, Err: err}
}

// Warmup wraps a resource acquisition failure.
func Warmup(node string, err error) *NodeError {
	return &NodeError{Op: "warmup", Kind: KindWarmup, Node: node, Err: err}
}

// Parameter reports an invalid parameter index or value.
func Parameter(node, format string, args ...any) *NodeError {
	return &NodeError{Op: "parameter", Kind: KindParameter, Node: node, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost NodeError in err's chain.
func KindOf(err error) ErrorKind {
	for err != nil {
		if ne, ok := err.(*NodeError); ok {
			return ne.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

// ErrorHandler receives errors reported by the node layer.
type ErrorHandler interface {
	// HandleError is called when a node fails.
	HandleError(err *NodeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
