package main

import (
	"os"

	"github.com/stencilkit/stencil/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
