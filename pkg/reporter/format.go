package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	// FormatTree is an indented outline of the node tree.
	FormatTree Format = "tree"

	// FormatXML is the CommonMark XML format.
	FormatXML Format = "xml"

	// FormatJSON is a JSON document per run.
	FormatJSON Format = "json"

	// FormatTable is a bordered table, used for reference listings.
	FormatTable Format = "table"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch Format(formatStr) {
	case "":
		return FormatTree, nil
	case FormatTree, FormatXML, FormatJSON, FormatTable:
		return Format(formatStr), nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: tree, xml, json, table", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatTree, FormatXML, FormatJSON, FormatTable:
		return true
	default:
		return false
	}
}
