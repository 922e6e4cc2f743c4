package storage

import (
	"context"
	"io"
)

// Storage is the interface for blob storage operations. Paths are relative
// to the storage root.
type Storage interface {
	// Save writes content at path, creating parent directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get returns a reader for the content at path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the content at path. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}
