package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
)

// diffContextLines is the number of unchanged lines around each hunk.
const diffContextLines = 3

// FileDiff is the line diff between two outlines of one input.
type FileDiff struct {
	// Path is the input the outlines were produced from.
	Path string

	// FromLabel and ToLabel name the two sides.
	FromLabel, ToLabel string

	// Hunks holds the unified diff body without file headers.
	Hunks []string

	Additions int
	Deletions int
}

// HasChanges reports whether the outlines differ.
func (d *FileDiff) HasChanges() bool {
	return d != nil && (d.Additions > 0 || d.Deletions > 0)
}

// ComputeDiff diffs expected against actual line by line.
func ComputeDiff(path, fromLabel, expected, toLabel, actual string) (*FileDiff, error) {
	diff := &FileDiff{Path: path, FromLabel: fromLabel, ToLabel: toLabel}
	if expected == actual {
		return diff, nil
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  diffContextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			continue
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
		diff.Hunks = append(diff.Hunks, line)
	}
	return diff, nil
}

// DiffReporter writes comparison diffs in git style.
type DiffReporter struct {
	reportBase
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{reportBase: newReportBase(opts)}
}

// Report writes every diff with changes, then a summary line when
// ShowSummary is set. It returns the number of files that differ.
func (r *DiffReporter) Report(diffs []*FileDiff) (int, error) {
	var files, additions, deletions int

	for _, diff := range diffs {
		if !diff.HasChanges() {
			continue
		}
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		if err := r.writeDiff(r.opts.Writer, diff); err != nil {
			return files, err
		}
	}

	if r.opts.ShowSummary {
		if _, err := fmt.Fprint(r.opts.Writer, r.styles.FormatDiffSummary(files, additions, deletions)); err != nil {
			return files, fmt.Errorf("write summary: %w", err)
		}
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(w io.Writer, diff *FileDiff) error {
	path := r.opts.displayPath(diff.Path)

	var b strings.Builder
	b.WriteString(r.styles.DiffHeader.Render(fmt.Sprintf("diff %s %s", diff.FromLabel, diff.ToLabel)) + "\n")
	b.WriteString(r.styles.DiffRemove.Render(fmt.Sprintf("--- %s/%s", diff.FromLabel, path)) + "\n")
	b.WriteString(r.styles.DiffAdd.Render(fmt.Sprintf("+++ %s/%s", diff.ToLabel, path)) + "\n")
	for _, line := range diff.Hunks {
		b.WriteString(styleDiffLine(r.styles, line) + "\n")
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write diff for %s: %w", diff.Path, err)
	}
	return nil
}

func styleDiffLine(styles *pretty.Styles, line string) string {
	switch {
	case strings.HasPrefix(line, "@@"):
		return styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		return styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		return styles.DiffRemove.Render(line)
	default:
		return styles.DiffContext.Render(line)
	}
}
