package config

import (
	"fmt"
	"strings"
)

// GenerateTemplate returns a commented configuration file holding the
// defaults.
func GenerateTemplate() []byte {
	defaults := NewConfig()
	formats := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		formats = append(formats, string(f))
	}

	var sb strings.Builder
	sb.WriteString("# gocmark configuration\n\n")

	sb.WriteString("# Render straight quotes, dashes and ellipses typographically.\n")
	fmt.Fprintf(&sb, "smart: %t\n\n", defaults.Smart)

	fmt.Fprintf(&sb, "# Output format: %s.\n", strings.Join(formats, ", "))
	fmt.Fprintf(&sb, "format: %s\n\n", defaults.Format)

	sb.WriteString("# Include block source positions (line:col-line:col) in output.\n")
	fmt.Fprintf(&sb, "sourcepos: %t\n\n", defaults.SourcePos)

	sb.WriteString("# Guess a language for code blocks without an info string.\n")
	fmt.Fprintf(&sb, "detect_languages: %t\n\n", defaults.DetectLanguages)

	sb.WriteString("# File extensions treated as Markdown when walking directories.\n")
	sb.WriteString("# extensions: [.md, .markdown]\n\n")

	sb.WriteString("# Glob patterns for files to skip.\n")
	sb.WriteString("# ignore:\n#   - vendor/**\n")

	return []byte(sb.String())
}
