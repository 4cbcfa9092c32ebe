package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stencilkit/stencil/internal/output"
	"github.com/stencilkit/stencil/internal/project"
	"github.com/stencilkit/stencil/internal/scaffold"
)

// sharedFlags are the scaffolding flags common to every kind.
type sharedFlags struct {
	dir        string
	template   string
	extensions []string
	files      []string
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dir, "dir", "", "Existing target directory (default: create ./<name>)")
	cmd.Flags().StringVar(&f.template, "template", "", "Template directory, file:// path, or archive URL")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "Extra file extensions to render (e.g. --ext md)")
	cmd.Flags().StringSliceVar(&f.files, "files", nil, "Filenames always rendered regardless of extension")
}

// NewCmd creates the 'new' command with one subcommand per kind.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a new package from a template",
	}

	cmd.AddCommand(newProjectCmd())
	cmd.AddCommand(newApplicationCmd())
	cmd.AddCommand(newFunctionCmd())

	return cmd
}

func newProjectCmd() *cobra.Command {
	var flags sharedFlags

	cmd := &cobra.Command{
		Use:   "project [name]",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runScaffold(scaffold.Options{
				Kind: scaffold.KindProject,
				Name: args[0],
			}, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func newApplicationCmd() *cobra.Command {
	var flags sharedFlags

	cmd := &cobra.Command{
		Use:     "app [name]",
		Aliases: []string{"application"},
		Short:   "Create a new application",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runScaffold(scaffold.Options{
				Kind: scaffold.KindApplication,
				Name: args[0],
			}, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func newFunctionCmd() *cobra.Command {
	var (
		flags         sharedFlags
		strategy      int
		async         bool
		parameterized bool
		verboseName   string
	)

	cmd := &cobra.Command{
		Use:   "function [name]",
		Short: "Create a new function package",
		Long: `Creates a function package under a functions directory. The name is a
snake_case identifier; it becomes the package name, and its CamelCase form is
used in generated type names.

Strategies:
  1 - plain function, immediate saving
  2 - lazy saving, flushed by the function itself (default)
  3 - lazy saving, flushing delegated to the runner`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			variant := scaffold.VariantSync
			if async {
				variant = scaffold.VariantAsync
			}
			runScaffold(scaffold.Options{
				Kind:          scaffold.KindFunction,
				Name:          args[0],
				Strategy:      scaffold.StrategyID(strategy),
				Variant:       variant,
				Parameterized: parameterized,
				VerboseName:   verboseName,
				// Function templates ship docs and dialog assets.
				Extensions: []string{".go", ".md", ".js"},
			}, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&strategy, "strategy", int(scaffold.StrategyLazySaving), "Implementation strategy (1, 2 or 3)")
	cmd.Flags().BoolVar(&async, "async", false, "Use the asynchronous template variant")
	cmd.Flags().BoolVar(&parameterized, "parameterized", false, "Include the parameters dialog file")
	cmd.Flags().StringVar(&verboseName, "verbose-name", "Unnamed function", "Human-readable function name")
	return cmd
}

// runScaffold merges config defaults into the options, runs the pipeline, and
// reports the single user-facing outcome.
func runScaffold(opts scaffold.Options, flags *sharedFlags) {
	settings, err := LoadSettings()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}

	opts.TargetDir = flags.dir
	opts.Template = flags.template
	opts.Extensions = append(opts.Extensions, settings.Extensions...)
	opts.Extensions = append(opts.Extensions, flags.extensions...)
	for _, entry := range flags.files {
		for _, name := range strings.Split(entry, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.ExtraFiles = append(opts.ExtraFiles, name)
			}
		}
	}
	opts.Normalize = settings.Normalize

	targetBase := opts.TargetDir
	if targetBase == "" {
		targetBase, _ = os.Getwd()
	}
	opts.SearchRoots = project.SearchRoots(settings.SearchRoots, targetBase)

	pipeline := scaffold.NewPipeline(opts)
	if err := pipeline.Run(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}

	output.Success(fmt.Sprintf("Created %s: %s", opts.Kind, opts.Name))
	output.Info("Next steps:")
	output.Step(fmt.Sprintf("cd %s", pipeline.TopDir()))
	output.Step("go build ./...")
}
