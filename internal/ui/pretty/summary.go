package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gocmark/pkg/runner"
)

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files parsed, 1 failed (412 nodes, 5 references)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	var parts []string
	parts = append(parts, s.Success.Render(plural(stats.FilesParsed, "file", "files")+" parsed"))
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	details := []string{
		plural(stats.Nodes, "node", "nodes"),
		plural(stats.References, "reference", "references"),
	}
	if stats.Annotated > 0 {
		details = append(details, plural(stats.Annotated, "language guessed", "languages guessed"))
	}

	return strings.Join(parts, ", ") + " " + s.Dim.Render("("+strings.Join(details, ", ")+")") + "\n"
}

// FormatDiffSummary formats the totals of a comparison.
// Example: "2 files differ, 3 insertions(+), 1 deletion(-)".
func (s *Styles) FormatDiffSummary(files, additions, deletions int) string {
	if files == 0 {
		return s.Success.Render("No differences") + "\n"
	}

	parts := []string{plural(files, "file differs", "files differ")}
	if additions > 0 {
		parts = append(parts, s.DiffAdd.Render(plural(additions, "insertion(+)", "insertions(+)")))
	}
	if deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(plural(deletions, "deletion(-)", "deletions(-)")))
	}
	return strings.Join(parts, ", ") + "\n"
}
