package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded files (guest document scans) are kept.
type Storage interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Open returns a reader for the file at the given relative path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the file at the given relative path.
	// Removing a missing file is not an error.
	Remove(ctx context.Context, path string) error
}
