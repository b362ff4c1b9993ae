package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/flowgui/pkg/gui"
	"github.com/go-drift/flowgui/pkg/node"
)

// KindsOptions holds the options for the kinds command.
type KindsOptions struct {
	Params bool
}

func NewKindsCommand(cli *CLI) *cobra.Command {
	opts := KindsOptions{}

	cmd := &cobra.Command{
		Use:   "kinds [prefix]",
		Short: "List the node kinds a wire can use",
		Long: Highlight("flowgui kinds [prefix]") + "\n\n" +
			"List every registered node kind with its version hash and the types it\n" +
			"accepts and produces. A prefix such as UI. narrows the list.\n",
		Args: MaxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			reg := node.NewRegistry()
			if err := gui.Register(reg); err != nil {
				return err
			}
			return opts.print(cli, reg, prefix)
		},
	}
	cmd.Flags().BoolVarP(&opts.Params, "params", "p", false, "Also list each kind's parameters")
	return cmd
}

func (o KindsOptions) print(cli *CLI, reg *node.Registry, prefix string) error {
	n := 0
	for _, k := range reg.Kinds() {
		if !strings.HasPrefix(k.Name, prefix) {
			continue
		}
		n++
		cli.Printf("%s %s %08x  %s -> %s\n", cli.Heading(k.Name), k.Version, k.Hash(), k.InputTypes, k.OutputTypes)
		if !o.Params {
			continue
		}
		for _, p := range k.Params {
			cli.Printf("    %-12s %s  %s\n", p.Name, p.Types, p.Help)
		}
	}
	if n == 0 {
		return fmt.Errorf("no kinds match %q", prefix)
	}
	return nil
}
