package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/relokit/vault/pkg/logger"
)

// ErrObjectNotFound is returned by Get when the key has no object behind it.
// Callers in bulk paths treat it as a per-document skip, never as fatal.
var ErrObjectNotFound = errors.New("object not found")

// Backend selects the object store implementation.
type Backend string

const (
	BackendMinio Backend = "minio"
	BackendS3    Backend = "s3"
)

// ObjectStore is the object storage contract for document bytes.
type ObjectStore interface {
	// Store writes the object under key and returns the stored key.
	Store(ctx context.Context, reader io.Reader, key string, size int64, contentType string) (string, error)
	// Get opens the object for reading. Missing keys map to ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object.
	Delete(ctx context.Context, key string) error
	// CleanupBefore removes objects last modified before threshold. The
	// referenced callback spares keys that still back a document row, so
	// only orphans from interrupted uploads and missed deletes go.
	CleanupBefore(ctx context.Context, threshold time.Time, referenced func(key string) bool) error
}

// NewObjectStore creates the configured backend.
func NewObjectStore(backend Backend, log logger.Logger) (ObjectStore, error) {
	switch backend {
	case BackendMinio:
		return NewMinioStorage(log)
	case BackendS3:
		return NewS3Storage(log)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
