package configloader

import "github.com/yaklabco/gocmark/pkg/config"

// merge combines two configurations, with override taking precedence.
//   - Strings and ints: override wins when non-zero.
//   - Booleans: override wins when true; a layer cannot switch off what a
//     lower layer switched on, except through the environment.
//   - Slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Smart = base.Smart || override.Smart
	result.SourcePos = base.SourcePos || override.SourcePos
	result.DetectLanguages = base.DetectLanguages || override.DetectLanguages

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
