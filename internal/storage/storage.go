// Package storage is the boundary between the front end and the medium that
// holds a project: it lists directories and reads whole files.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read for a missing object.
var ErrNotFound = errors.New("not found")

// Entry is one directory member.
type Entry struct {
	Name  string // базовое имя
	Path  string // полный путь или URL, пригодный для Read/List
	IsDir bool
}

// Store lists directories and reads files.
type Store interface {
	// List returns the direct members of dir, without dir itself.
	List(ctx context.Context, dir string) ([]Entry, error)
	// Read returns the complete contents of a file.
	Read(ctx context.Context, path string) ([]byte, error)
	// Stat reports whether path exists and what it is.
	Stat(ctx context.Context, path string) (Entry, bool, error)
}
