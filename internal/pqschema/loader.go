// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pqschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrSourceUnavailable indicates the schema source could not be opened or read.
	ErrSourceUnavailable = errors.New("schema source unavailable")

	// ErrInvalidSource indicates the source was read but does not hold a usable schema.
	ErrInvalidSource = errors.New("invalid schema source")
)

// readerAtSeeker is what the Parquet footer reader needs from a file.
type readerAtSeeker interface {
	io.ReaderAt
	io.Seeker
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads the schema stored in filePath.
// The format is determined from the file extension: ".parquet" files are read
// through their footer, ".yaml", ".yml" and ".json" files are declarative
// schema documents.
func (l *Loader) LoadFile(filePath string) (*Schema, error) {
	ext := strings.ToLower(path.Ext(filePath))
	switch ext {
	case ".parquet", ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s: format %q not supported", ErrInvalidSource, filePath, ext)
	}

	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close() //nolint:errcheck

	if ext != ".parquet" {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, filePath, err)
		}
		s, err := parseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSource, filePath, err)
		}
		return s, nil
	}

	r, ok := f.(readerAtSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, filePath, err)
		}
		r = bytes.NewReader(data)
	}

	s, err := readParquet(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSource, filePath, err)
	}
	return s, nil
}

// LoadPath loads the schema stored at an OS path, relative or absolute.
func LoadPath(p string) (*Schema, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, p, err)
	}
	return NewLoader(os.DirFS(filepath.Dir(abs))).LoadFile(filepath.Base(abs))
}
