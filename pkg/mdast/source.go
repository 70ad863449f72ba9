package mdast

// Source is an input document together with a line index, used to map
// byte offsets reported by other parsers back to line and column numbers.
type Source struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the raw input.
	Content []byte

	// Lines contains metadata for each line.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the line ending begins.
	// For the last line without an ending, this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the line ending.
	EndOffset int
}

// NewSource creates a Source and builds its line index.
func NewSource(path string, content []byte) *Source {
	return &Source{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
