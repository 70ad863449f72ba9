// Package config defines the configuration types for gocmark.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

// OutputFormat selects how parsed documents are written.
type OutputFormat string

const (
	// FormatTree is an indented outline of the tree, styled on terminals.
	FormatTree OutputFormat = "tree"
	// FormatXML is the CommonMark XML format.
	FormatXML OutputFormat = "xml"
	// FormatJSON is a JSON document holding the tree and its references.
	FormatJSON OutputFormat = "json"
)

// Formats lists the valid output formats.
func Formats() []OutputFormat {
	return []OutputFormat{FormatTree, FormatXML, FormatJSON}
}

// IsValid reports whether f names a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTree, FormatXML, FormatJSON:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure.
type Config struct {
	// Smart enables typographic punctuation.
	Smart bool `yaml:"smart"`

	// Format is the output format.
	Format OutputFormat `yaml:"format"`

	// SourcePos adds block source positions to the output.
	SourcePos bool `yaml:"sourcepos"`

	// DetectLanguages guesses a language for code blocks that have no
	// info string.
	DetectLanguages bool `yaml:"detect_languages"`

	// Extensions are the file extensions treated as Markdown during
	// directory discovery.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Color controls colorized output: "auto", "always" or "never".
	Color string `yaml:"-"`

	// Output is a file to write results to instead of stdout.
	Output string `yaml:"-"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Format: FormatTree,
		Color:  "auto",
	}
}
