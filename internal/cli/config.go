package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gocmark/internal/configloader"
	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/config"
)

// loadedConfig is the effective configuration of one command run.
type loadedConfig struct {
	*config.Config

	WorkDir    string
	LoadedFrom []string
}

// loadConfig merges the configuration layers with the flags in cliCfg.
// The persistent --config and --color flags are read from cmd.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if color, err := cmd.Flags().GetString("color"); err == nil {
		cliCfg.Color = color
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldSmart, result.Config.Smart,
		logging.FieldFormat, result.Config.Format,
		logging.FieldSourcePos, result.Config.SourcePos,
		logging.FieldJobs, result.Config.Jobs,
	)

	return &loadedConfig{
		Config:     result.Config,
		WorkDir:    workDir,
		LoadedFrom: result.LoadedFrom,
	}, nil
}

type configFlags struct {
	env bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration that results from merging the system, user,
project and explicit config files with GOCMARK_* environment variables.

Examples:
  gocmark config          # Print the merged configuration as YAML
  gocmark config --env    # List the environment variables gocmark reads`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		rows := make([][]string, 0)
		for _, v := range configloader.ListEnvVars() {
			rows = append(rows, []string{v.Name, v.Description})
		}
		color, _ := cmd.Flags().GetString("color")
		styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
		_, err := fmt.Fprint(out, pretty.NewTableFormatter(styles, 0).Format([]string{"VARIABLE", "DESCRIPTION"}, rows))
		return err
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	header := "# effective configuration"
	if len(cfg.LoadedFrom) > 0 {
		header += "\n# loaded from:\n#   " + strings.Join(cfg.LoadedFrom, "\n#   ")
	}
	data, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}
