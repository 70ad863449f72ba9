package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gocmark/internal/logging"
	"github.com/yaklabco/gocmark/pkg/fsutil"
	"github.com/yaklabco/gocmark/pkg/langdetect"
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/parser"
)

// Runner parses many inputs with a shared parser.
type Runner struct {
	// Parser turns each input into a tree.
	Parser parser.SourceParser

	logger *log.Logger
}

// New creates a Runner around p. A nil logger discards debug output.
func New(p parser.SourceParser, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Parser: p, logger: logger}
}

// Run discovers inputs under opts.Paths and parses them concurrently.
// Outcomes are reported in discovery order whatever order the workers
// finish in. Per-file failures land in the outcome; the returned error is
// reserved for discovery failures and cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("discovered inputs", logging.FieldFilesDiscovered, len(files))

	return r.ParseFiles(ctx, files, opts)
}

// ParseFiles parses the given inputs without discovery.
func (r *Runner) ParseFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each worker writes only its own slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	work := make(chan int)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(work)
		for i := range files {
			select {
			case <-groupCtx.Done():
				return nil
			case work <- i:
			}
		}
		return nil
	})

	for range jobs {
		group.Go(func() error {
			for i := range work {
				if groupCtx.Err() != nil {
					return nil
				}
				outcomes[i] = r.parseOne(groupCtx, files[i], opts)
				done[i] = true
			}
			return nil
		})
	}

	_ = group.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) parseOne(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	content, info, err := fsutil.ReadInput(ctx, path, stdin)
	if err != nil {
		outcome.Error = err
		r.logger.Debug("read failed", logging.FieldPath, path, logging.FieldError, err)
		return outcome
	}

	outcome.Source = mdast.NewSource(path, content)
	outcome.Digest = info.Digest()

	tree, err := r.Parser.ParseSource(ctx, outcome.Source)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Tree = tree

	if opts.DetectLanguages {
		outcome.Annotated = langdetect.Annotate(tree)
	}

	r.logger.Debug("parsed",
		logging.FieldPath, path,
		logging.FieldNodes, tree.Len(),
		logging.FieldReferences, len(tree.Refs))
	return outcome
}
