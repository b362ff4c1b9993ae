package memo

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type artifact struct {
	key string
	n   int
}

func counting(calls *int) func(string) *artifact {
	return func(k string) *artifact {
		*calls++
		return &artifact{key: k, n: *calls}
	}
}

func TestSameGenerationReturnsIdenticalArtifact(t *testing.T) {
	c := New(nil)
	c.NextFrame()
	var calls int
	fc := Cache(c, "code", counting(&calls))

	a := fc.Get("fn main() {}")
	b := fc.Get("fn main() {}")
	if a != b {
		t.Error("equal keys in one generation should return the same artifact")
	}
	if calls != 1 {
		t.Errorf("compute calls = %d, want 1", calls)
	}
	if fc.Get("other") == a {
		t.Error("different keys should not share an artifact")
	}
}

func TestReuseAcrossAdjacentFrames(t *testing.T) {
	c := New(nil)
	var calls int
	fc := Cache(c, "code", counting(&calls))

	c.NextFrame()
	first := fc.Get("x")
	for i := 0; i < 5; i++ {
		c.NextFrame()
		if got := fc.Get("x"); got != first {
			t.Fatalf("frame %d: artifact recomputed while touched every frame", c.Generation())
		}
	}
	if calls != 1 {
		t.Errorf("compute calls = %d, want 1", calls)
	}
}

func TestStaleEntryIsRecomputedInPlace(t *testing.T) {
	c := New(nil)
	var calls int
	fc := Cache(c, "code", counting(&calls))

	c.NextFrame()
	first := fc.Get("x")
	c.NextFrame()
	c.NextFrame()
	second := fc.Get("x")
	if second == first {
		t.Error("entry untouched for two frames should be recomputed")
	}
	if calls != 2 {
		t.Errorf("compute calls = %d, want 2", calls)
	}
	if fc.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (overwritten in place)", fc.Len())
	}
}

func TestCacheRegistryReturnsSameInstance(t *testing.T) {
	c := New(nil)
	a := Cache(c, "console", func(s string) int { return len(s) })
	b := Cache(c, "console", func(s string) int { return 0 })
	if a != b {
		t.Error("Cache should return the registered instance")
	}
	if got := b.Get("abc"); got != 3 {
		t.Errorf("Get = %d, want the first compute function's result", got)
	}
}

func TestCacheRegistryTypeConflictPanics(t *testing.T) {
	c := New(nil)
	Cache(c, "console", func(s string) int { return len(s) })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting types")
		}
	}()
	Cache(c, "console", func(i int) string { return "" })
}

func TestMetricsCountHitsAndMisses(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics()
	m.MustRegister(registry)

	c := New(m)
	c.NextFrame()
	fc := Cache(c, "code", func(s string) string { return s })
	fc.Get("a")
	fc.Get("a")
	fc.Get("b")

	if got := testutil.ToFloat64(m.hits.WithLabelValues("code")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.misses.WithLabelValues("code")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
}
