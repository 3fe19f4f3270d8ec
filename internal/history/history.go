// Package history persists the interactive shell's line history between runs.
package history

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// FS is the slice of the filesystem the history file needs. Tests swap in
// implementations that fail on purpose.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (io.ReadCloser, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// ReplaceFile writes r to path so readers see either the old or the new
	// content, never a partial file.
	ReplaceFile(path string, r io.Reader) error
}

// Real implements [FS] on the real filesystem.
type Real struct{}

// A passthrough wrapper for [os.Open].
func (Real) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// A passthrough wrapper for [os.MkdirAll].
func (Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReplaceFile writes through a temp file and renames it over path.
func (Real) ReplaceFile(path string, r io.Reader) error {
	return atomic.WriteFile(path, r)
}

// Compile-time interface check.
var _ FS = Real{}

// Reader is the part of a line editor that loads history.
type Reader interface {
	ReadHistory(r io.Reader) (int, error)
}

// Writer is the part of a line editor that dumps history.
type Writer interface {
	WriteHistory(w io.Writer) (int, error)
}

const dirPerms = 0o750

// File is a history file at Path. An empty Path disables history: Load and
// Save do nothing.
type File struct {
	Path string
	FS   FS // default: Real
}

func (f File) fs() FS {
	if f.FS == nil {
		return Real{}
	}

	return f.FS
}

// Load feeds the saved lines into dst and returns how many were read.
// A missing file is not an error.
func (f File) Load(dst Reader) (int, error) {
	if f.Path == "" {
		return 0, nil
	}

	rc, err := f.fs().Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}

		return 0, fmt.Errorf("loading history: %w", err)
	}

	defer func() { _ = rc.Close() }()

	n, err := dst.ReadHistory(rc)
	if err != nil {
		return n, fmt.Errorf("loading history: %w", err)
	}

	return n, nil
}

// Save replaces the file with the lines held by src, creating parent
// directories as needed.
func (f File) Save(src Writer) error {
	if f.Path == "" {
		return nil
	}

	var buf bytes.Buffer

	_, err := src.WriteHistory(&buf)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	fsys := f.fs()

	err = fsys.MkdirAll(filepath.Dir(f.Path), dirPerms)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	err = fsys.ReplaceFile(f.Path, &buf)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}
