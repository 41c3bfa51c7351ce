// Package book represents the book project plugins are installed into.
package book

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bookpm/bookpm/internal/registry"
)

var (
	_ registry.Project = (*Book)(nil)
	_ registry.Logger  = (*Log)(nil)
)

// Book is a book directory on disk.
type Book struct {
	root string
	log  *Log
}

// Open returns the book rooted at dir. Progress is written to out.
func Open(dir string, out io.Writer) (*Book, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving book directory %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening book: %s is not a directory", abs)
	}
	return &Book{root: abs, log: NewLog(out)}, nil
}

// Root returns the absolute book directory.
func (b *Book) Root() string { return b.root }

// Log returns the book's progress sink.
func (b *Book) Log() registry.Logger { return b.log }

// Log writes progress lines for a book.
type Log struct {
	w io.Writer
}

// NewLog returns a Log writing to w. A nil w discards output.
func NewLog(w io.Writer) *Log {
	if w == nil {
		w = io.Discard
	}
	return &Log{w: w}
}

// Info writes an "info:" line.
func (l *Log) Info(format string, args ...any) {
	fmt.Fprintf(l.w, "info: "+format+"\n", args...)
}

// OK writes a success line.
func (l *Log) OK(format string, args ...any) {
	fmt.Fprintf(l.w, "✓ "+format+"\n", args...)
}
