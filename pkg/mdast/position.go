package mdast

import "fmt"

// Position represents a 1-based line and column in a document.
// Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition is the span of a block in terms of line/column positions.
// The end column of an empty list item may be 0-based padding, and a
// block closed before any content has EndLine < StartLine.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid returns true if both start and end positions are set.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 && sp.EndLine > 0
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// String formats the span as "startLine:startCol-endLine:endCol".
func (sp SourcePosition) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", sp.StartLine, sp.StartColumn, sp.EndLine, sp.EndColumn)
}
