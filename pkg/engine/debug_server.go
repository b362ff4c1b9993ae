package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	flowerrors "github.com/go-drift/flowgui/pkg/errors"
	"github.com/go-drift/flowgui/pkg/node"
	"github.com/go-drift/flowgui/pkg/scope"
	"github.com/go-drift/flowgui/pkg/types"
)

// DebugServer serves wire inspection endpoints for a running engine.
type DebugServer struct {
	engine   *Engine
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

// NodeInfo is one node of the serialized wire tree.
type NodeInfo struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	State    string     `json:"state"`
	Output   string     `json:"output,omitempty"`
	Required []string   `json:"required,omitempty"`
	Exposed  []string   `json:"exposed,omitempty"`
	Slots    []SlotInfo `json:"slots,omitempty"`
}

// SlotInfo is one non-empty shards parameter of a node.
type SlotInfo struct {
	Name  string     `json:"name"`
	Nodes []NodeInfo `json:"nodes"`
}

// Slot returns the nodes of the named slot, or nil.
func (n NodeInfo) Slot(name string) []NodeInfo {
	for _, s := range n.Slots {
		if s.Name == name {
			return s.Nodes
		}
	}
	return nil
}

// NewDebugServer returns a stopped server inspecting e.
func NewDebugServer(e *Engine) *DebugServer {
	return &DebugServer{engine: e}
}

// Start binds port and serves in the background.
// Returns the actual port (useful when port=0 for ephemeral allocation).
func (s *DebugServer) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}

	server := &http.Server{Handler: s.Handler()}
	s.server = server
	s.listener = listener

	go func() {
		defer flowerrors.Recover("engine.debugServer")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			s.engine.log.Error(err, "debug server stopped")
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Handler returns the endpoint mux.
func (s *DebugServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", getOnly(s.handleHealth))
	mux.HandleFunc("/wire", getOnly(s.handleWire))
	mux.HandleFunc("/frames", getOnly(s.handleFrames))
	mux.HandleFunc("/runtime", getOnly(s.handleRuntime))
	mux.Handle("/metrics", promhttp.HandlerFor(s.engine.opts.Gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Stop gracefully shuts the server down.
func (s *DebugServer) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleWire returns the node tree of the current wire. frameLock is held
// for the whole walk so no frame mutates node state underneath it.
func (s *DebugServer) handleWire(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	e := s.engine
	e.frameLock.Lock()
	wire := e.current
	if wire == nil {
		e.frameLock.Unlock()
		http.Error(w, "no wire", http.StatusServiceUnavailable)
		return
	}
	resp := struct {
		Name   string     `json:"name"`
		Frame  uint64     `json:"frame"`
		Output string     `json:"output"`
		Nodes  []NodeInfo `json:"nodes"`
	}{
		Name:   wire.Name,
		Frame:  wire.frame,
		Output: wire.outputType.String(),
		Nodes:  Describe(wire.root),
	}
	e.frameLock.Unlock()

	writeJSON(w, resp)
}

// handleFrames returns recent frame samples.
func (s *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	resp := s.engine.trace.Snapshot()
	applyFrameFilters(r, &resp)
	writeJSON(w, resp)
}

// handleRuntime returns recent runtime/GC samples.
func (s *DebugServer) handleRuntime(w http.ResponseWriter, r *http.Request) {
	buffer := s.engine.runtime
	if buffer == nil {
		http.Error(w, "runtime sampling disabled", http.StatusServiceUnavailable)
		return
	}
	resp := struct {
		Samples []RuntimeSample `json:"samples"`
	}{
		Samples: applyLimit(r, buffer.Snapshot()),
	}
	writeJSON(w, resp)
}

func applyFrameFilters(r *http.Request, resp *FrameTimeline) {
	var filters []func(FrameSample) bool

	if v := parseFloatQuery(r, "min_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.FrameMs >= v })
	}
	if value := r.URL.Query().Get("failed"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil && parsed {
			filters = append(filters, func(s FrameSample) bool { return s.Failed })
		}
	}
	if wire := r.URL.Query().Get("wire"); wire != "" {
		filters = append(filters, func(s FrameSample) bool { return s.Wire == wire })
	}

	if len(filters) > 0 {
		filtered := make([]FrameSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	resp.Samples = applyLimit(r, resp.Samples)
}

func applyLimit[T any](r *http.Request, samples []T) []T {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 0 && len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}
	return samples
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

// maxTreeDepth limits recursion depth to prevent stack overflow from malformed trees.
const maxTreeDepth = 500

// Describe serializes seq and the sequences nested in its nodes' shards
// parameters.
func Describe(seq *node.Sequence) []NodeInfo {
	return describe(seq, 0)
}

func describe(seq *node.Sequence, depth int) []NodeInfo {
	var out []NodeInfo
	for _, inst := range seq.Instances() {
		out = append(out, describeNode(inst, depth))
	}
	return out
}

func describeNode(inst *node.Instance, depth int) NodeInfo {
	info := NodeInfo{
		Name:     inst.Name(),
		Kind:     inst.Kind().Name,
		State:    inst.State().String(),
		Required: names(inst.Required()),
		Exposed:  names(inst.Exposed()),
	}
	if inst.State() != node.StateDeclared {
		info.Output = inst.OutputType().String()
	}
	if depth >= maxTreeDepth {
		return info
	}
	for i, p := range inst.Kind().Params {
		if !p.Types.Contains(types.Shards) {
			continue
		}
		seq, ok := inst.GetParam(i).(*node.Sequence)
		if !ok || seq.IsEmpty() {
			continue
		}
		info.Slots = append(info.Slots, SlotInfo{Name: p.Name, Nodes: describe(seq, depth+1)})
	}
	return info
}

func names(infos []scope.ExposedInfo) []string {
	if len(infos) == 0 {
		return nil
	}
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Name
	}
	return out
}
