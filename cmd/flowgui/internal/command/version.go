package command

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version returns the module version the binary was built from.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}

func NewVersionCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: Highlight("flowgui version") + "\n\n" +
			"Display the version of flowgui and the Go toolchain it was built with.\n",
		Args: MaxArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			goVersion := "unknown"
			if info, ok := debug.ReadBuildInfo(); ok {
				goVersion = info.GoVersion
			}
			cli.Printf("flowgui %s (%s)\n", Version(), goVersion)
		},
	}
}
