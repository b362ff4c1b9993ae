package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/flowgui/pkg/engine"
	"github.com/go-drift/flowgui/pkg/gui"
	"github.com/go-drift/flowgui/pkg/node"
)

// CheckOptions holds the options for the check command.
type CheckOptions struct {
	Output string
}

func NewCheckCommand(cli *CLI) *cobra.Command {
	opts := CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <wire.yaml>",
		Short: "Compose a wire without running it",
		Long: Highlight("flowgui check <wire.yaml>") + "\n\n" +
			"Build and compose a wire, then print its node tree with the variables\n" +
			"each node requires and exposes. Compose errors such as type mismatches\n" +
			"and missing dependencies are reported without opening a surface.\n",
		Args: ExactArgsWithUsage(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cli, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format. One of: (json)")
	return cmd
}

func (o CheckOptions) run(cli *CLI, path string) error {
	if o.Output != "" && o.Output != "json" {
		return fmt.Errorf("invalid output format %q", o.Output)
	}
	spec, err := engine.LoadWireSpec(path)
	if err != nil {
		return err
	}
	reg := node.NewRegistry()
	if err := gui.Register(reg); err != nil {
		return err
	}
	e := engine.New(reg, engine.Options{Logger: cli.Logger})
	w, err := e.Build(spec)
	if err != nil {
		return err
	}
	if err := e.Compose(w); err != nil {
		return err
	}

	nodes := engine.Describe(w.Root())
	if o.Output == "json" {
		data, err := json.MarshalIndent(map[string]any{
			"name":   w.Name,
			"input":  w.InputType.String(),
			"output": w.OutputType().String(),
			"nodes":  nodes,
		}, "", "  ")
		if err != nil {
			return err
		}
		cli.Println(string(data))
		return nil
	}
	cli.Printf("%s %s: %s -> %s, %d nodes\n", cli.Heading("Wire"), w.Name, w.InputType, w.OutputType(), w.Len())
	cli.Tree(nodes)
	return nil
}
