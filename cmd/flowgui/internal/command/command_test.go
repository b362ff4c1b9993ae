package command_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-drift/flowgui/cmd/flowgui/internal/command"
)

func TestNewRootCommand(t *testing.T) {
	cmd := command.NewRootCommand()

	if cmd.Use != "flowgui" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" || cmd.Version == "" {
		t.Error("expected Short, Long and Version to be set")
	}
	if !cmd.SilenceUsage || !cmd.SilenceErrors {
		t.Error("expected usage and errors to be silenced")
	}
	if !cmd.CompletionOptions.DisableDefaultCmd {
		t.Error("expected the completion command to be disabled")
	}
	for _, name := range []string{"debug", "quiet"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing --%s", name)
		}
	}
}

func TestAddCommands(t *testing.T) {
	root := command.NewRootCommand()
	command.AddCommands(root, command.NewCLI(&bytes.Buffer{}))

	for _, name := range []string{"version", "kinds", "check", "run"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Errorf("command %s: %v", name, err)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("Find(%s) = %s", name, cmd.Name())
		}
	}
	if got := len(root.Commands()); got != 4 {
		t.Errorf("len(Commands()) = %d, want 4", got)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	root := command.NewRootCommand()
	command.AddCommands(root, command.NewCLI(&buf))
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "flowgui ") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestExactArgs(t *testing.T) {
	fn := command.ExactArgs(2)
	if err := fn(nil, []string{"a", "b"}); err != nil {
		t.Errorf("exact match: %v", err)
	}
	err := fn(nil, []string{"a"})
	if err == nil || !strings.Contains(err.Error(), "expected 2 arguments, got 1") {
		t.Errorf("too few: %v", err)
	}
}

func TestMaxArgs(t *testing.T) {
	fn := command.MaxArgs(1)
	if err := fn(nil, nil); err != nil {
		t.Errorf("no args: %v", err)
	}
	err := fn(nil, []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "expected at most 1 arguments, got 2") {
		t.Errorf("too many: %v", err)
	}
}

func TestHighlight(t *testing.T) {
	if got := command.Highlight("flowgui %s", "run"); !strings.Contains(got, "flowgui run") {
		t.Errorf("Highlight = %q", got)
	}
}
