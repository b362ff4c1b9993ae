// Package testing provides a wire testing harness for flowgui.
//
// # Quick Start
//
// Load a wire, pump frames, and make assertions on the recorded display
// list:
//
//	func TestMyWire(t *testing.T) {
//	    tester := flowtest.NewWireTesterWithT(t)
//	    tester.MustLoad(`
//	name: demo
//	input: String
//	nodes:
//	  - kind: GUI
//	    params:
//	      Contents:
//	        - kind: UI.CentralPanel
//	          params:
//	            Contents:
//	              - kind: UI.Label
//	`)
//	    tester.Pump("hello")
//
//	    if !tester.Find(flowtest.ByText("hello")).Exists() {
//	        t.Error("expected 'hello' label")
//	    }
//	}
//
// # Interaction
//
// Tap and PickColor script the response of a widget for the next frame:
//
//	tester.Tap(flowtest.ByKind("imageButton"))
//	tester.Pump(img)
//
// # Snapshot Testing
//
// Capture and compare display list snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_wire.snapshot.json")
//
// Update snapshots with:
//
//	FLOWGUI_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import flowtest "github.com/go-drift/flowgui/pkg/testing"
package testing
