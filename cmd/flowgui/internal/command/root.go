package command

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/flowgui/cmd/flowgui/internal/view"
	flowerrors "github.com/go-drift/flowgui/pkg/errors"
)

var (
	debugFlag bool
	quietFlag bool
	rootCmd   *cobra.Command
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use: "flowgui",
		Short: Highlight("flowgui [global options] <subcommand> [args]") + "\n" +
			"Run wires of GUI nodes against a recording backend",
		Long: Highlight("Usage: flowgui [global options] <subcommand> [args]\n") + "\n" +
			"flowgui loads wires of GUI nodes from YAML, checks that they compose,\n" +
			"runs them for a number of frames and prints the display list the last\n" +
			"frame drew.\n\n",
		Version:       Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				_ = cmd.Help()
			}
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Set log level to debug")
	cmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Silence logs")
	return cmd
}

func setCobraUsageTemplate() {
	cobra.AddTemplateFunc("StyleHeading", view.HeadingColor().SprintFunc())
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Examples:`, `{{StyleHeading "Examples:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Additional Commands:`, `{{StyleHeading "Additional Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(usageTemplate)
	rootCmd.SetUsageTemplate(usageTemplate)
}

func Execute() {
	rootCmd = NewRootCommand()
	setCobraUsageTemplate()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		color.NoColor = true
	}

	cli := NewCLI(os.Stdout)
	AddCommands(rootCmd, cli)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cli.Stream = view.NewStream(os.Stdout)
		cli.Logger = view.NewLogger(os.Stderr, debugFlag, quietFlag, view.IsTerminal(os.Stderr) && !color.NoColor)
		flowerrors.SetHandler(flowerrors.LogrHandler{Logger: cli.Logger.WithName("errors")})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if msg := err.Error(); msg != "" {
			cli.Println(msg)
		}
		os.Exit(1)
	}
}

// AddCommands registers all subcommands to the root command.
func AddCommands(root *cobra.Command, cli *CLI) {
	root.AddCommand(
		NewVersionCommand(cli),
		NewKindsCommand(cli),
		NewCheckCommand(cli),
		NewRunCommand(cli),
	)
}
