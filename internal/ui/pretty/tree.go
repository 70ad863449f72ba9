package pretty

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

// ellipsis marks a truncated literal.
const ellipsis = "…"

// TreeLine is one node of a tree dump.
type TreeLine struct {
	Depth   int
	Kind    mdast.NodeKind
	Attrs   []mdast.Attr
	Literal string

	// HasLiteral is set for kinds that print their literal.
	HasLiteral bool
}

// FormatTreeLine renders a node line with indent guides. Literals are
// quoted and, when maxWidth is positive, shortened so the line fits.
func (s *Styles) FormatTreeLine(line TreeLine, maxWidth int) string {
	var b strings.Builder
	width := 0

	if line.Depth > 0 {
		guide := strings.Repeat("│ ", line.Depth)
		b.WriteString(s.Guide.Render(guide))
		width += 2 * line.Depth
	}

	kindStyle := s.BlockKind
	if line.Kind.IsInline() {
		kindStyle = s.InlineKind
	}
	tag := line.Kind.Tag()
	b.WriteString(kindStyle.Render(tag))
	width += len(tag)

	for _, a := range line.Attrs {
		value := strconv.Quote(a.Value)
		b.WriteString(" " + s.AttrName.Render(a.Name+"=") + s.AttrValue.Render(value))
		width += 2 + len(a.Name) + utf8.RuneCountInString(value)
	}

	if line.HasLiteral {
		quoted := strconv.Quote(line.Literal)
		if maxWidth > 0 {
			quoted = truncateQuoted(quoted, maxWidth-width-1)
		}
		b.WriteString(" " + s.Literal.Render(quoted))
	}

	return b.String()
}

// truncateQuoted shortens a quoted string to at most limit runes, keeping
// the closing quote. Strings are never cut below a minimal readable size.
func truncateQuoted(quoted string, limit int) string {
	const minimum = 8
	limit = max(limit, minimum)

	if utf8.RuneCountInString(quoted) <= limit {
		return quoted
	}

	runes := []rune(quoted)
	// Keep the opening quote, the head, an ellipsis and the closing quote.
	return string(runes[:limit-2]) + ellipsis + `"`
}
