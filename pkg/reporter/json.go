package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/runner"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONFile is one input's result.
type JSONFile struct {
	Path       string                     `json:"path"`
	Digest     string                     `json:"sha256,omitempty"`
	Error      string                     `json:"error,omitempty"`
	Document   *mdast.JSONNode            `json:"document,omitempty"`
	References map[string]mdast.Reference `json:"references,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesParsed  int `json:"filesParsed"`
	FilesErrored int `json:"filesErrored"`
	Nodes        int `json:"nodes"`
	References   int `json:"references"`
}

// JSONReporter formats results as a single JSON document.
type JSONReporter struct {
	reportBase
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{reportBase: newReportBase(opts)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	r.writeSummary(result)
	return output.Summary.FilesParsed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFile, 0),
	}
	if result == nil {
		return output
	}

	dumpOpts := mdast.DumpOptions{SourcePos: r.opts.SourcePos}
	for _, file := range result.Files {
		entry := JSONFile{
			Path:   r.opts.displayPath(file.Path),
			Digest: file.Digest,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
			output.Summary.FilesErrored++
		} else {
			entry.Document = file.Tree.ToJSON(file.Tree.Root(), dumpOpts)
			if len(file.Tree.Refs) > 0 {
				entry.References = file.Tree.Refs
			}
			output.Summary.FilesParsed++
			output.Summary.Nodes += file.Tree.Len()
			output.Summary.References += len(file.Tree.Refs)
		}
		output.Files = append(output.Files, entry)
	}

	return output
}
