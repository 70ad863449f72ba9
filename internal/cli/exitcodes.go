package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gocmark/pkg/fsutil"
)

// Exit codes for gocmark.
const (
	// ExitSuccess indicates every input was handled without differences.
	ExitSuccess = 0

	// ExitFailure indicates an input could not be parsed or a comparison
	// found differences.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrDifferencesFound is returned by compare when the parsers disagree.
	ErrDifferencesFound = errors.New("differences found")

	// ErrInputErrors is returned when one or more inputs could not be read.
	ErrInputErrors = errors.New("one or more inputs failed")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid flag combinations and values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDifferencesFound), errors.Is(err, ErrInputErrors):
		return ExitFailure
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsQuiet reports whether err only signals an exit code and should not be
// logged.
func IsQuiet(err error) bool {
	return errors.Is(err, ErrDifferencesFound) || errors.Is(err, ErrInputErrors)
}
