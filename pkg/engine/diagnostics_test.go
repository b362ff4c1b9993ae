package engine

import (
	"context"
	"testing"
	"time"
)

func TestFrameTraceBufferWraps(t *testing.T) {
	b := NewFrameTraceBuffer(3, 10*time.Millisecond)
	for i := 1; i <= 5; i++ {
		d := time.Duration(i) * 4 * time.Millisecond
		b.Add(FrameSample{Frame: uint64(i), FrameMs: durationToMillis(d), Failed: i == 2}, d)
	}
	tl := b.Snapshot()
	if len(tl.Samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(tl.Samples))
	}
	for i, want := range []uint64{3, 4, 5} {
		if tl.Samples[i].Frame != want {
			t.Errorf("sample %d frame = %d, want %d", i, tl.Samples[i].Frame, want)
		}
	}
	// 12ms, 16ms and 20ms exceed the threshold; counts survive eviction.
	if tl.SlowFrames != 3 || tl.Failures != 1 {
		t.Errorf("slow = %d failures = %d, want 3 and 1", tl.SlowFrames, tl.Failures)
	}
	if tl.ThresholdMs != 10 {
		t.Errorf("threshold = %v, want 10", tl.ThresholdMs)
	}
}

func TestFrameTraceBufferDefaults(t *testing.T) {
	b := NewFrameTraceBuffer(0, 0)
	if b.Capacity() != frameTraceSamplesDefault {
		t.Errorf("capacity = %d", b.Capacity())
	}
	if b.Threshold() != defaultFrameTraceThreshold {
		t.Errorf("threshold = %v", b.Threshold())
	}
	if tl := b.Snapshot(); tl.Samples != nil {
		t.Errorf("empty snapshot samples = %v", tl.Samples)
	}
}

func TestRuntimeSampleBufferCapacity(t *testing.T) {
	b := NewRuntimeSampleBuffer(time.Second, time.Millisecond)
	if b.Interval() != runtimeSampleMinInterval {
		t.Errorf("interval = %v, want clamped to %v", b.Interval(), runtimeSampleMinInterval)
	}
	for i := 0; i < 15; i++ {
		b.Add(RuntimeSample{Timestamp: int64(i)})
	}
	got := b.Snapshot()
	if len(got) != 10 || got[0].Timestamp != 5 || got[9].Timestamp != 14 {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestRuntimeSampleBufferSample(t *testing.T) {
	b := NewRuntimeSampleBuffer(time.Minute, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Sample(ctx)
		close(done)
	}()
	deadline := time.Now().Add(2 * time.Second)
	for len(b.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	samples := b.Snapshot()
	if len(samples) == 0 {
		t.Fatal("expected an immediate sample")
	}
	if samples[0].Goroutines == 0 || samples[0].HeapAlloc == 0 {
		t.Errorf("sample = %+v", samples[0])
	}
}
