package runner

import (
	"github.com/yaklabco/gocmark/pkg/mdast"
)

// FileOutcome is the parse result for one input.
type FileOutcome struct {
	// Path is the input path, or "-" for stdin.
	Path string

	// Source is the input with its line index. Nil when reading failed.
	Source *mdast.Source

	// Tree is the parsed document. Nil when Error is set.
	Tree *mdast.Tree

	// Digest is the hex SHA-256 of the input.
	Digest string

	// Annotated is the number of code blocks given a guessed language.
	Annotated int

	// Error is set if the input could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of inputs found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of inputs parsed successfully.
	FilesParsed int

	// FilesErrored is the number of inputs that failed.
	FilesErrored int

	// Nodes is the total number of tree nodes across all parsed inputs.
	Nodes int

	// References is the total number of link reference definitions.
	References int

	// Annotated is the total number of code blocks given a guessed language.
	Annotated int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered input, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any input failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil || outcome.Tree == nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Nodes += outcome.Tree.Len()
	r.Stats.References += len(outcome.Tree.Refs)
	r.Stats.Annotated += outcome.Annotated
}
