package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations.
// The media module uses it to persist ground gallery images; implementations
// may be local disk or any object-storage service.
type Storage interface {
	// Save stores content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get retrieves the content stored under the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the content stored under the given relative path.
	Delete(ctx context.Context, path string) error
}
