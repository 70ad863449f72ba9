package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/runner"
)

// RefRow is one link reference definition of one input.
type RefRow struct {
	Path        string `json:"path"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Destination string `json:"destination"`
	Title       string `json:"title,omitempty"`
}

// CollectRefs lists the definitions of every parsed input, ordered by
// path and then by normalized label.
func CollectRefs(result *runner.Result) []RefRow {
	if result == nil {
		return nil
	}

	var rows []RefRow
	for _, file := range result.Files {
		if file.Tree == nil {
			continue
		}
		start := len(rows)
		for key, ref := range file.Tree.Refs {
			rows = append(rows, RefRow{
				Path:        file.Path,
				Key:         key,
				Label:       ref.Label,
				Destination: ref.Destination,
				Title:       ref.Title,
			})
		}
		fileRows := rows[start:]
		sort.Slice(fileRows, func(i, j int) bool { return fileRows[i].Key < fileRows[j].Key })
	}
	return rows
}

// RefsReporter lists link reference definitions as a table or as JSON.
type RefsReporter struct {
	reportBase
	width int
}

// NewRefsReporter creates a reference reporter. Formats other than
// FormatJSON render a table.
func NewRefsReporter(opts Options) *RefsReporter {
	base := newReportBase(opts)
	return &RefsReporter{
		reportBase: base,
		width:      terminalWidth(base.opts.Writer),
	}
}

// Report implements Reporter. It returns the number of definitions listed.
func (r *RefsReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result != nil {
		for _, file := range result.Files {
			if file.Error != nil {
				r.writeFileError(file)
			}
		}
	}

	rows := CollectRefs(result)
	for i := range rows {
		rows[i].Path = r.opts.displayPath(rows[i].Path)
	}

	if r.opts.Format == FormatJSON {
		if rows == nil {
			rows = []RefRow{}
		}
		encoder := json.NewEncoder(bw)
		if !r.opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(rows); err != nil {
			return 0, fmt.Errorf("encode JSON: %w", err)
		}
		return len(rows), nil
	}

	if len(rows) == 0 {
		fmt.Fprintln(bw, r.styles.Dim.Render("No link reference definitions found."))
		return 0, nil
	}

	withPath := result != nil && len(result.Files) > 1
	headers := []string{"LABEL", "DESTINATION", "TITLE"}
	if withPath {
		headers = append([]string{"FILE"}, headers...)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{row.Label, row.Destination, row.Title}
		if withPath {
			line = append([]string{row.Path}, line...)
		}
		cells = append(cells, line)
	}

	fmt.Fprint(bw, pretty.NewTableFormatter(r.styles, r.width).Format(headers, cells))
	return len(rows), nil
}
