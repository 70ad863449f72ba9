package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gocmark/pkg/config"
)

// envVarPrefix is the prefix of all gocmark environment variables.
const envVarPrefix = "GOCMARK_"

// envSetter applies one environment value to the configuration.
type envSetter struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func boolSetter(description string, field func(cfg *config.Config) *bool) envSetter {
	return envSetter{
		description: description,
		apply: func(cfg *config.Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("expected true/false/1/0, got %q", value)
			}
			*field(cfg) = b
			return nil
		},
	}
}

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetter{
	"SMART": boolSetter("Typographic punctuation: true or false",
		func(cfg *config.Config) *bool { return &cfg.Smart }),
	"SOURCEPOS": boolSetter("Include source positions: true or false",
		func(cfg *config.Config) *bool { return &cfg.SourcePos }),
	"DETECT_LANGUAGES": boolSetter("Guess languages of unlabeled code blocks: true or false",
		func(cfg *config.Config) *bool { return &cfg.DetectLanguages }),
	"FORMAT": {
		description: "Output format: tree, xml or json",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
}

// LoadFromEnv applies GOCMARK_* environment variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, setter := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := setter.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", envVar, err)
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated list, trimming and dropping
// empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, setter := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: setter.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
