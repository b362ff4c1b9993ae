package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/flowgui/pkg/rendering"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the display list of one frame.
type Snapshot struct {
	Size [2]float64   `json:"size"`
	Ops  []SnapshotOp `json:"ops"`
}

// SnapshotOp is the serialized form of a rendering.Op.
type SnapshotOp struct {
	Kind   string         `json:"kind"`
	ID     string         `json:"id,omitempty"`
	Depth  int            `json:"depth"`
	Text   string         `json:"text,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// CaptureSnapshot captures the last completed frame.
func (t *WireTester) CaptureSnapshot() *Snapshot {
	return SnapshotOf(t.DisplayList())
}

// SnapshotOf captures dl. Float parameters are rounded to two decimals so
// snapshots stay stable across platforms.
func SnapshotOf(dl *rendering.DisplayList) *Snapshot {
	snap := &Snapshot{Ops: []SnapshotOp{}}
	if dl == nil {
		return snap
	}
	size := dl.Size()
	snap.Size = [2]float64{round2(size.Width), round2(size.Height)}
	for _, op := range dl.Ops() {
		s := SnapshotOp{Kind: op.Kind, ID: op.ID, Depth: op.Depth, Text: op.Text}
		if len(op.Params) > 0 {
			s.Params = make(map[string]any, len(op.Params))
			for k, v := range op.Params {
				s.Params[k] = snapshotValue(v)
			}
		}
		snap.Ops = append(snap.Ops, s)
	}
	return snap
}

func snapshotValue(v any) any {
	switch n := v.(type) {
	case float64:
		return round2(n)
	case float32:
		return round2(float64(n))
	case string, bool, int:
		return v
	case fmt.Stringer:
		return n.String()
	}
	return fmt.Sprint(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When FLOWGUI_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("FLOWGUI_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: FLOWGUI_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: FLOWGUI_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot.
// Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return cmp.Diff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
