// Package fsutil reads Markdown inputs and writes rendered output for gocmark.
// Inputs are read whole and fingerprinted; outputs are replaced atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// DefaultMaxSize is the largest input ReadFile accepts.
const DefaultMaxSize int64 = 64 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds the size limit.
	ErrTooLarge = errors.New("input too large")
)

// FileInfo describes an input as it was read.
type FileInfo struct {
	// Path is the path the input was read from, or StdinPath.
	Path string

	// Mode is the file's permission and mode bits. Zero for stdin.
	Mode os.FileMode

	// ModTime is the file's modification time. Zero for stdin.
	ModTime time.Time

	// Size is the input size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the content.
	Hash [32]byte
}

// Digest returns the content hash in hex.
func (fi *FileInfo) Digest() string {
	if fi == nil {
		return ""
	}
	return hex.EncodeToString(fi.Hash[:])
}

// ReadFile reads a file of at most DefaultMaxSize bytes.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	return ReadFileLimit(ctx, path, DefaultMaxSize)
}

// ReadFileLimit reads a file and returns its content with metadata.
// A maxSize of zero or less disables the limit.
func ReadFileLimit(ctx context.Context, path string, maxSize int64) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, "stat", err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if maxSize > 0 && stat.Size() > maxSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTooLarge, path, stat.Size(), maxSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, "read", err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}, nil
}

// ReadInput reads path, or all of stdin when path is StdinPath.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, *FileInfo, error) {
	if path != StdinPath {
		return ReadFile(ctx, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}

	content, err := io.ReadAll(io.LimitReader(stdin, DefaultMaxSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(content)) > DefaultMaxSize {
		return nil, nil, fmt.Errorf("%w: stdin exceeds %d bytes", ErrTooLarge, DefaultMaxSize)
	}

	return content, &FileInfo{
		Path: StdinPath,
		Size: int64(len(content)),
		Hash: sha256.Sum256(content),
	}, nil
}

func classify(path, op string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
