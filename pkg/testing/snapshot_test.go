package testing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCaptureSnapshot(t *testing.T) {
	tester := pumped(t)
	snap := tester.CaptureSnapshot()
	if snap.Size != [2]float64{DefaultTestWidth, DefaultTestHeight} {
		t.Errorf("size = %v", snap.Size)
	}
	if len(snap.Ops) != tester.DisplayList().Len() {
		t.Fatalf("ops = %d, want %d", len(snap.Ops), tester.DisplayList().Len())
	}
	if snap.Ops[0].Kind != "beginPanel" {
		t.Errorf("first op = %+v", snap.Ops[0])
	}
}

func TestCaptureSnapshot_NoFrame(t *testing.T) {
	tester := NewWireTesterWithT(t)
	snap := tester.CaptureSnapshot()
	if snap == nil || len(snap.Ops) != 0 {
		t.Errorf("snapshot = %+v, want empty", snap)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := pumped(t)
	a := tester.CaptureSnapshot()
	tester.Pump("hello")
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical frames, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := pumped(t)
	a := tester.CaptureSnapshot()
	tester.Pump("goodbye")
	b := tester.CaptureSnapshot()
	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different frames")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv("FLOWGUI_UPDATE_SNAPSHOTS", "")
	snap := pumped(t).CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "testdata", "panels.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("FLOWGUI_UPDATE_SNAPSHOTS", "")
	snap := pumped(t).CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("FLOWGUI_UPDATE_SNAPSHOTS", "")
	tester := pumped(t)
	first := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "snap.json")
	first.UpdateFile(path)

	tester.Pump("changed")
	second := tester.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := pumped(t).CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv("FLOWGUI_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
