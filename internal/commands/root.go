package commands

import (
	"github.com/spf13/cobra"
	"github.com/stencilkit/stencil"
	"github.com/stencilkit/stencil/internal/output"
)

// RootCmd creates and returns the root command for the Stencil CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "stencil",
		Short: "Scaffold packages from templates",
		Long: `Stencil generates new source packages from template trees.

It resolves a template (built-in, local directory, file:// path, or remote
archive), substitutes the package name throughout paths and rendered files,
and refuses to overwrite anything that already exists.`,
		Version: stencil.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}
