package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/configloader"
	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/config"
	"github.com/yaklabco/gocmark/pkg/fsutil"
)

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gocmark configuration file",
		Long: `Create a .gocmark.yml configuration file in the current directory
holding the defaults, each option documented.

Examples:
  gocmark init                      Create .gocmark.yml
  gocmark init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: "+configloader.ProjectConfigFiles[0]+")")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, absPath, config.GenerateTemplate(), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if !changed {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}
	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}
