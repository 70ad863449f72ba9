// Package runner discovers Markdown files and parses them concurrently.
package runner

import "io"

// Options controls discovery and parsing of a batch of files.
type Options struct {
	// Paths are the files or directories to process. "-" selects stdin.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the file extensions (with leading dot) treated as
	// Markdown during directory walks. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent parses.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// DetectLanguages guesses languages for code blocks without info strings.
	DetectLanguages bool

	// Stdin is read when Paths contains "-".
	Stdin io.Reader
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
