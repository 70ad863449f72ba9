package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/gocmark/pkg/fsutil"
)

// matcher decides which walked paths become inputs.
type matcher struct {
	workDir    string
	extensions []string
	include    *globSet
	exclude    *globSet
	follow     bool

	// visited holds resolved directories already walked, so symlink
	// cycles terminate.
	visited map[string]struct{}
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	return &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		visited:    make(map[string]struct{}),
	}, nil
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// acceptsFile applies the extension and glob filters to a file.
func (m *matcher) acceptsFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	found := false
	for _, e := range m.extensions {
		if strings.ToLower(e) == ext {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	rel := m.rel(path)
	if m.exclude.Match(rel) {
		return false
	}
	return m.include.Empty() || m.include.Match(rel)
}

// Discover expands opts.Paths into a sorted, de-duplicated list of inputs.
// Directories are walked for files with a Markdown extension; hidden entries
// are skipped. Files named explicitly are taken regardless of extension but
// still honor the exclude patterns. "-" passes through unchanged and sorts
// first.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if inputPath == fsutil.StdinPath {
			add(inputPath)
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !m.exclude.Match(m.rel(absPath)) {
				add(absPath)
			}
			continue
		}

		walked, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range walked {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk collects accepted files under root.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := m.visited[real]; done {
			return nil, nil
		}
		m.visited[real] = struct{}{}
	}

	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && m.exclude.Match(m.rel(path))) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !m.follow {
					return nil
				}
				// WalkDir does not descend into symlinks, so walk the target.
				sub, err := m.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.acceptsFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
