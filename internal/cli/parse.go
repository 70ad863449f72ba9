package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/fsutil"
	"github.com/yaklabco/gocmark/pkg/reporter"
)

type parseFlags struct {
	inputFlags

	format    string
	sourcePos bool
	output    string
	summary   bool
	compact   bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse Markdown files and print their trees",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: tree, xml, json (default tree)")
	cmd.Flags().BoolVar(&flags.sourcePos, "sourcepos", false, "include block source positions")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print run statistics to stderr")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write JSON without indentation")

	return cmd
}

const parseLongDescription = `Parse Markdown files and print their document trees.

By default, parses all .md and .markdown files in the current directory
and subdirectories. Use "-" to read a document from stdin.

Examples:
  gocmark parse README.md              # Outline of one file
  gocmark parse --format xml doc.md    # CommonMark XML
  gocmark parse --format json docs/    # JSON for every file under docs/
  cat doc.md | gocmark parse -         # Read from stdin
  gocmark parse --smart -o out.xml --format xml doc.md`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Format:    config.OutputFormat(flags.format),
		SourcePos: flags.sourcePos,
		Output:    flags.output,
	}
	flags.apply(cliCfg)

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil || format == reporter.FormatTable {
		return fmt.Errorf("%w: format %q is not available for parse", ErrUsage, cfg.Format)
	}

	result, err := parseInputs(cmd, args, cfg)
	if err != nil {
		return err
	}

	var (
		writer io.Writer = cmd.OutOrStdout()
		buf    bytes.Buffer
	)
	if cfg.Output != "" {
		writer = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      writer,
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       cfg.Color,
		SourcePos:   cfg.SourcePos,
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		WorkingDir:  cfg.WorkDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output != "" {
		if err := fsutil.WriteAtomic(ctx, cfg.Output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Debug("wrote output", logging.FieldOutput, cfg.Output)
	}

	if result.HasErrors() {
		return ErrInputErrors
	}
	return nil
}
