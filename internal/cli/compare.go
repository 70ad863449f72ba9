package cli

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/fsutil"
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
	goldmarkparser "github.com/yaklabco/gocmark/pkg/parser/goldmark"
	"github.com/yaklabco/gocmark/pkg/reporter"
	"github.com/yaklabco/gocmark/pkg/runner"
)

const (
	referenceLabel = "goldmark"
	nativeLabel    = "gocmark"
)

type compareFlags struct {
	jobs    int
	ignore  []string
	inlines bool
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [paths...]",
		Short: "Compare the parsed structure against goldmark",
		Long: `Parse each file with both gocmark and goldmark and print a unified diff
of the two document outlines. Only block structure is compared unless
--inlines is given.

The command exits with status 1 when any file differs.

Examples:
  gocmark compare README.md
  gocmark compare --inlines docs/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.inlines, "inlines", false, "compare inline nodes too")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, flags *compareFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, &config.Config{Jobs: flags.jobs, Ignore: flags.ignore})
	if err != nil {
		return err
	}

	opts := runnerOptions(cmd, args, cfg)
	opts.DetectLanguages = false

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("discover inputs: %w", err)
	}

	// Both runs read stdin, so it is buffered once.
	var stdin []byte
	if slices.Contains(files, fsutil.StdinPath) {
		if stdin, err = io.ReadAll(opts.Stdin); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	run := func(p parser.SourceParser) (*runner.Result, error) {
		runOpts := opts
		runOpts.Stdin = bytes.NewReader(stdin)
		return runner.New(p, logger).ParseFiles(ctx, files, runOpts)
	}

	native, err := run(parser.New(parser.WithLogger(logger)))
	if err != nil {
		return err
	}
	reference, err := run(goldmarkparser.New())
	if err != nil {
		return err
	}

	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Color:       cfg.Color,
		ShowSummary: true,
		WorkingDir:  cfg.WorkDir,
	})

	dumpOpts := mdast.DumpOptions{BlocksOnly: !flags.inlines}
	diffs := make([]*reporter.FileDiff, 0, len(files))
	failed := false

	for i, path := range files {
		got, want := native.Files[i], reference.Files[i]
		if got.Error != nil || want.Error != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %v\n", path, firstError(got.Error, want.Error))
			continue
		}

		diff, err := reporter.ComputeDiff(path,
			referenceLabel, outline(want.Tree, dumpOpts),
			nativeLabel, outline(got.Tree, dumpOpts))
		if err != nil {
			return err
		}
		diffs = append(diffs, diff)
	}

	differing, err := rep.Report(diffs)
	if err != nil {
		return fmt.Errorf("report differences: %w", err)
	}
	logger.Debug("comparison finished",
		logging.FieldFiles, len(files),
		logging.FieldDifferences, differing,
	)

	switch {
	case differing > 0:
		return ErrDifferencesFound
	case failed:
		return ErrInputErrors
	default:
		return nil
	}
}

// outline returns the text dump of a whole tree.
func outline(tree *mdast.Tree, opts mdast.DumpOptions) string {
	var sb strings.Builder
	_ = tree.WriteText(&sb, tree.Root(), opts)
	return sb.String()
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
