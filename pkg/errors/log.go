package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination; nil means stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a NodeError.
func (h *LogHandler) HandleError(err *NodeError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[flowgui error] %s\n", err.Error())
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[flowgui error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[flowgui panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[flowgui panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// LogrHandler forwards reported errors to a structured logger.
type LogrHandler struct {
	Logger logr.Logger
}

// HandleError logs a NodeError with its structured fields.
func (h LogrHandler) HandleError(err *NodeError) {
	if err == nil {
		return
	}
	h.Logger.Error(err.Err, "node failed",
		"op", err.Op,
		"kind", err.Kind.String(),
		"node", err.Node,
		"child", err.Child,
	)
}

// HandlePanic logs a PanicError.
func (h LogrHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.Logger.Error(err, "recovered panic", "op", err.Op)
	h.Logger.V(1).Info("panic stack", "stack", err.StackTrace)
}
