package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/runner"
)

// XMLReporter writes each document in the CommonMark XML format. With
// several inputs the documents follow one another, each introduced by an
// XML comment naming its path.
type XMLReporter struct {
	reportBase
}

// NewXMLReporter creates an XML reporter.
func NewXMLReporter(opts Options) *XMLReporter {
	return &XMLReporter{reportBase: newReportBase(opts)}
}

// Report implements Reporter.
func (r *XMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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
			fmt.Fprintf(bw, "<!-- %s -->\n", r.opts.displayPath(file.Path))
		}
		if err := file.Tree.WriteXML(bw, file.Tree.Root(), mdast.DumpOptions{SourcePos: r.opts.SourcePos}); err != nil {
			return written, fmt.Errorf("write XML for %s: %w", file.Path, err)
		}
		written++
	}

	r.writeSummary(result)
	return written, nil
}
