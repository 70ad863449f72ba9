package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// globSet matches slash-separated relative paths against a list of
// patterns. "*" stays within one path segment and "**" crosses segments.
// A pattern without a slash also matches the base name, "dir/**" matches
// dir itself, and "**/x" matches x at the top level.
type globSet struct {
	full []glob.Glob
	base []glob.Glob
}

func compileGlobs(patterns []string) (*globSet, error) {
	set := &globSet{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		variants := []string{pattern}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && prefix != "" {
			variants = append(variants, prefix)
		}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			variants = append(variants, rest)
		}

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.full = append(set.full, g)
		}

		if !strings.Contains(pattern, "/") {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.base = append(set.base, g)
		}
	}
	return set, nil
}

// Empty reports whether the set has no patterns.
func (s *globSet) Empty() bool {
	return len(s.full) == 0
}

// Match reports whether relPath matches any pattern.
func (s *globSet) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, g := range s.full {
		if g.Match(relPath) {
			return true
		}
	}
	if len(s.base) == 0 {
		return false
	}
	base := relPath[strings.LastIndexByte(relPath, '/')+1:]
	for _, g := range s.base {
		if g.Match(base) {
			return true
		}
	}
	return false
}
