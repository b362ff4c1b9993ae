package engine

import "time"

// DiagnosticsConfig controls the engine's frame tracing, runtime sampling
// and debug server.
type DiagnosticsConfig struct {
	// FrameSamples is the number of frame samples kept for /frames.
	// Defaults to 240 if zero.
	FrameSamples int
	// TargetFrameTime is the budget above which a frame counts as slow.
	// Defaults to 16.67ms (60fps) if zero.
	TargetFrameTime time.Duration
	// RuntimeSampleInterval enables periodic memory/GC sampling while Run
	// is active. 0 disables it.
	RuntimeSampleInterval time.Duration
	// RuntimeSampleWindow is the history kept for runtime samples.
	// Defaults to 60s if zero.
	RuntimeSampleWindow time.Duration
	// DebugServerPort enables an HTTP debug server while Run is active.
	// 0 = disabled, >0 = port number (e.g., 9999), -1 = ephemeral port.
	// The server exposes /health, /wire, /frames, /runtime and /metrics.
	DebugServerPort int
}

// DefaultDiagnosticsConfig returns a DiagnosticsConfig with sensible defaults.
func DefaultDiagnosticsConfig() *DiagnosticsConfig {
	return &DiagnosticsConfig{
		FrameSamples:    frameTraceSamplesDefault,
		TargetFrameTime: defaultFrameTraceThreshold,
	}
}
