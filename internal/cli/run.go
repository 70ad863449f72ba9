package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/parser"
	"github.com/yaklabco/gocmark/pkg/runner"
)

// inputFlags are the flags shared by the commands that read documents.
type inputFlags struct {
	smart           bool
	detectLanguages bool
	jobs            int
	ignore          []string
}

func addInputFlags(cmd *cobra.Command, flags *inputFlags) {
	cmd.Flags().BoolVar(&flags.smart, "smart", false, "use typographic quotes, dashes and ellipses")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false,
		"guess a language for code blocks without an info string")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
}

// apply copies the input flags onto the CLI config layer.
func (f *inputFlags) apply(cfg *config.Config) {
	cfg.Smart = f.smart
	cfg.DetectLanguages = f.detectLanguages
	cfg.Jobs = f.jobs
	cfg.Ignore = f.ignore
}

func runnerOptions(cmd *cobra.Command, args []string, cfg *loadedConfig) runner.Options {
	return runner.Options{
		Paths:           args,
		WorkingDir:      cfg.WorkDir,
		Extensions:      cfg.Extensions,
		ExcludeGlobs:    cfg.Ignore,
		Jobs:            cfg.Jobs,
		DetectLanguages: cfg.DetectLanguages,
		Stdin:           cmd.InOrStdin(),
	}
}

// parseInputs discovers and parses the inputs named by args with the
// native parser.
func parseInputs(cmd *cobra.Command, args []string, cfg *loadedConfig) (*runner.Result, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	p := parser.New(parser.WithSmart(cfg.Smart), parser.WithLogger(logger))
	opts := runnerOptions(cmd, args, cfg)

	logger.Debug("starting parse run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(p, logger).Run(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse run failed: %w", err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldNodes, result.Stats.Nodes,
	)
	return result, nil
}
