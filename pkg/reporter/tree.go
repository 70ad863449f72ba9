package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/runner"
)

// TreeReporter writes a styled outline of each document. On a terminal,
// long literals are shortened to the terminal width; elsewhere the outline
// is written in full.
type TreeReporter struct {
	reportBase
	width int
}

// NewTreeReporter creates a tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	base := newReportBase(opts)
	return &TreeReporter{
		reportBase: base,
		width:      terminalWidth(base.opts.Writer),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	headers := len(result.Files) > 1
	written := 0
	for _, file := range result.Files {
		if file.Error != nil {
			r.writeFileError(file)
			continue
		}

		if headers {
			if written > 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprintln(bw, r.styles.FilePath.Render(r.opts.displayPath(file.Path)))
		}
		r.writeTree(bw, file.Tree)
		written++
	}

	r.writeSummary(result)
	return written, nil
}

func (r *TreeReporter) writeTree(bw *bufio.Writer, tree *mdast.Tree) {
	opts := mdast.DumpOptions{SourcePos: r.opts.SourcePos}
	depth := 0

	_ = tree.WalkWithContext(tree.Root(),
		func(id mdast.NodeID) error {
			node := tree.Node(id)
			line := pretty.TreeLine{
				Depth:      depth,
				Kind:       node.Kind,
				Attrs:      tree.Attrs(id, opts),
				Literal:    node.Literal,
				HasLiteral: mdast.HasLiteral(node.Kind),
			}
			bw.WriteString(r.styles.FormatTreeLine(line, r.width))
			bw.WriteByte('\n')
			depth++
			return nil
		},
		func(mdast.NodeID) error {
			depth--
			return nil
		})
}
