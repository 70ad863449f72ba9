package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/reporter"
)

type refsFlags struct {
	inputFlags

	json bool
}

func newRefsCommand() *cobra.Command {
	flags := &refsFlags{}

	cmd := &cobra.Command{
		Use:   "refs [paths...]",
		Short: "List link reference definitions",
		Long: `List the link reference definitions of Markdown files with their
destinations and titles. Only the first definition of a label counts.

Examples:
  gocmark refs README.md       # Table of definitions
  gocmark refs --json docs/    # JSON array, one entry per definition`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(cmd, args, flags)
		},
	}

	addInputFlags(cmd, &flags.inputFlags)
	cmd.Flags().BoolVar(&flags.json, "json", false, "print definitions as JSON")

	return cmd
}

func runRefs(cmd *cobra.Command, args []string, flags *refsFlags) error {
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	flags.apply(cliCfg)

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	result, err := parseInputs(cmd, args, cfg)
	if err != nil {
		return err
	}

	format := reporter.FormatTable
	if flags.json {
		format = reporter.FormatJSON
	}

	count, err := reporter.NewRefsReporter(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       cfg.Color,
		WorkingDir:  cfg.WorkDir,
	}).Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report references: %w", err)
	}
	logging.FromContext(ctx).Debug("listed references", logging.FieldReferences, count)

	if result.HasErrors() {
		return ErrInputErrors
	}
	return nil
}
