package command

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/go-drift/flowgui/cmd/flowgui/internal/view"
)

// CLI is the state shared by every subcommand. The root command replaces
// the stream and logger once the global flags are parsed.
type CLI struct {
	*view.Stream
	Logger logr.Logger
}

// Highlight applies the heading color to the given format and arguments.
func Highlight(format string, a ...any) string {
	return view.HeadingColor().Sprintf(format, a...)
}

// NewCLI returns a CLI writing to w with logging discarded.
func NewCLI(w io.Writer) *CLI {
	return &CLI{
		Stream: view.NewStream(w),
		Logger: logr.Discard(),
	}
}

// ExactArgs returns an error if there is not the exact number of args.
func ExactArgs(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == number {
			return nil
		}
		return fmt.Errorf("expected %d arguments, got %d", number, len(args))
	}
}

// ExactArgsWithUsage is ExactArgs that also prints the usage.
func ExactArgsWithUsage(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == number {
			return nil
		}
		_ = cmd.Usage()
		if number == 1 {
			return fmt.Errorf("requires exactly 1 argument")
		}
		return fmt.Errorf("requires exactly %d arguments", number)
	}
}

// MaxArgs returns an error if there are more than the max number of args.
func MaxArgs(number int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) <= number {
			return nil
		}
		return fmt.Errorf("expected at most %d arguments, got %d", number, len(args))
	}
}
