// Package reporter renders parse results as tree outlines, CommonMark XML,
// JSON, reference tables and comparison diffs.
package reporter

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gocmark/internal/ui/pretty"
	"github.com/yaklabco/gocmark/pkg/runner"
)

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for result. It returns the number of
	// documents written and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	opts = opts.withDefaults()

	switch opts.Format {
	case FormatTree:
		return NewTreeReporter(opts), nil
	case FormatXML:
		return NewXMLReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format for parse output: %s", opts.Format)
	}
}

// reportBase holds what every reporter shares.
type reportBase struct {
	opts   Options
	styles *pretty.Styles
}

func newReportBase(opts Options) reportBase {
	opts = opts.withDefaults()
	return reportBase{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// writeFileError reports a failed input on the error writer.
func (b *reportBase) writeFileError(file runner.FileOutcome) {
	errStyles := pretty.NewStyles(pretty.IsColorEnabled(b.opts.Color, b.opts.ErrorWriter))
	fmt.Fprintf(b.opts.ErrorWriter, "%s: %s\n",
		errStyles.FilePath.Render(b.opts.displayPath(file.Path)),
		errStyles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
	)
}

// writeSummary writes run statistics on the error writer when enabled.
func (b *reportBase) writeSummary(result *runner.Result) {
	if !b.opts.ShowSummary || result == nil {
		return
	}
	errStyles := pretty.NewStyles(pretty.IsColorEnabled(b.opts.Color, b.opts.ErrorWriter))
	fmt.Fprint(b.opts.ErrorWriter, errStyles.FormatSummaryOneLine(result.Stats))
}

// terminalWidth returns the width of writer when it is a terminal, or 0.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}
