// Package engine hosts wires of flowgui nodes: it builds them from YAML
// descriptions, drives them through compose, warmup, per-frame activation
// and cleanup, and records what happened in logs, metrics and frame traces.
package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	flowerrors "github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/surface"
)

// Options configures an Engine.
type Options struct {
	// Logger receives engine and node logs. The zero value discards them.
	Logger logr.Logger
	// Backend opens the rendering context of GUI roots.
	Backend surface.Backend
	// Metrics, when set, is updated every frame.
	Metrics *Metrics
	// Gatherer backs the debug server's /metrics endpoint.
	// Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Diagnostics configures frame tracing, runtime sampling and the debug
	// server. Nil uses DefaultDiagnosticsConfig.
	Diagnostics *DiagnosticsConfig
	// FrameInterval paces Run. Zero runs frames back to back.
	FrameInterval time.Duration
}

// Engine drives wires built from its registry.
type Engine struct {
	reg  *node.Registry
	opts Options
	log  logr.Logger

	// frameLock serializes activation with debug server reads.
	frameLock sync.Mutex
	trace     *FrameTraceBuffer
	runtime   *RuntimeSampleBuffer
	current   *Wire
}

// New creates an engine instantiating nodes from reg.
func New(reg *node.Registry, opts Options) *Engine {
	if opts.Diagnostics == nil {
		opts.Diagnostics = DefaultDiagnosticsConfig()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	diag := opts.Diagnostics
	e := &Engine{
		reg:   reg,
		opts:  opts,
		log:   opts.Logger.WithName("engine"),
		trace: NewFrameTraceBuffer(diag.FrameSamples, diag.TargetFrameTime),
	}
	if diag.RuntimeSampleInterval > 0 {
		e.runtime = NewRuntimeSampleBuffer(diag.RuntimeSampleWindow, diag.RuntimeSampleInterval)
	}
	return e
}

// Registry returns the registry nodes are instantiated from.
func (e *Engine) Registry() *node.Registry { return e.reg }

// FrameTrace returns the recent frame samples.
func (e *Engine) FrameTrace() *FrameTraceBuffer { return e.trace }

// Compose validates the whole wire against its input type. Failures are
// reported once.
func (e *Engine) Compose(w *Wire) error {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()

	if w.composed {
		return nil
	}
	out, err := w.root.Compose(node.InstanceData{InputType: w.InputType, Shared: scope.Empty()})
	if err != nil {
		e.report("compose", w, err)
		return err
	}
	w.outputType = out
	w.composed = true
	e.current = w
	e.log.V(1).Info("wire composed", "wire", w.Name, "nodes", w.Len(), "output", out.String())
	return nil
}

// Warmup acquires the runtime resources of every node. Failures are
// reported once; the nodes warmed before the failing one are cleaned up.
func (e *Engine) Warmup(w *Wire) error {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()

	if !w.composed {
		return fmt.Errorf("wire %s: warmup before compose", w.Name)
	}
	if w.warm {
		return nil
	}
	ctx := node.NewContext(e.opts.Backend, e.opts.Logger.WithName(w.Name))
	if err := w.root.Warmup(ctx); err != nil {
		e.report("warmup", w, err)
		return err
	}
	w.ctx = ctx
	w.warm = true
	e.opts.Metrics.warm(1)
	e.log.V(1).Info("wire warm", "wire", w.Name, "variables", ctx.Vars.Names())
	return nil
}

// Tick activates one frame of the wire with input and returns its output.
// A failing frame is reported and traced; the wire stays warm.
func (e *Engine) Tick(w *Wire, input any) (any, error) {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()

	if !w.warm {
		return nil, fmt.Errorf("wire %s: tick before warmup", w.Name)
	}
	w.frame++
	w.ctx.Frame = w.frame

	start := time.Now()
	out, err := w.root.Activate(w.ctx, input)
	elapsed := time.Since(start)

	sample := FrameSample{
		Timestamp: start.UnixMilli(),
		Wire:      w.Name,
		Frame:     w.frame,
		FrameMs:   durationToMillis(elapsed),
	}
	if err != nil {
		sample.Failed = true
		sample.Error = err.Error()
	}
	e.trace.Add(sample, elapsed)
	e.opts.Metrics.frame(w.Name, elapsed.Seconds(), err)

	if err != nil {
		e.report("activate", w, err)
		return nil, err
	}
	e.log.V(2).Info("frame", "wire", w.Name, "frame", w.frame, "ms", sample.FrameMs)
	return out, nil
}

// Stop cleans every node up. It is a no-op on a wire that is not warm.
func (e *Engine) Stop(w *Wire) error {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()

	if !w.warm {
		return nil
	}
	err := w.root.Cleanup()
	w.warm = false
	e.opts.Metrics.warm(-1)
	if names := w.ctx.Vars.Names(); len(names) > 0 {
		e.log.Info("variables still referenced after cleanup", "wire", w.Name, "names", names)
	}
	if err != nil {
		e.report("cleanup", w, err)
	}
	e.log.V(1).Info("wire stopped", "wire", w.Name, "frames", w.frame)
	return err
}

// Run composes and warms w, then activates up to frames frames with input
// (frames <= 0 runs until ctx is done) and stops the wire. It returns the
// first failing frame's error.
func (e *Engine) Run(ctx context.Context, w *Wire, frames int, input any) (err error) {
	if err := e.Compose(w); err != nil {
		return err
	}
	if err := e.Warmup(w); err != nil {
		return err
	}
	defer func() {
		err = stderrors.Join(err, e.Stop(w))
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if e.runtime != nil {
		go e.runtime.Sample(ctx)
	}
	if port := e.opts.Diagnostics.DebugServerPort; port != 0 {
		srv := NewDebugServer(e)
		actual, err := srv.Start(max(port, 0))
		if err != nil {
			return err
		}
		defer srv.Stop()
		e.log.Info("debug server listening", "port", actual)
	}

	var tick <-chan time.Time
	if e.opts.FrameInterval > 0 {
		ticker := time.NewTicker(e.opts.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; frames <= 0 || n < frames; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return runDone(ctx, frames)
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return runDone(ctx, frames)
		}
		if _, err := e.Tick(w, input); err != nil {
			return err
		}
	}
	return nil
}

// runDone is the result of a run interrupted by ctx: success when the run
// was unbounded, the context error otherwise.
func runDone(ctx context.Context, frames int) error {
	if frames <= 0 {
		return nil
	}
	return ctx.Err()
}

// report forwards err to the global error handler with the wire as the
// failing node when no node claimed it.
func (e *Engine) report(op string, w *Wire, err error) {
	var ne *flowerrors.NodeError
	if !stderrors.As(err, &ne) {
		ne = &flowerrors.NodeError{Op: op, Node: w.Name, Err: err}
	}
	flowerrors.Report(ne)
	e.log.Error(err, "wire failed", "wire", w.Name, "op", op, "frame", w.frame)
}
