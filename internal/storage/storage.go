// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO,
// Cloudflare R2, AWS S3), and the in-memory implementation backs tests.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ObjectInfo describes one stored object as reported by a listing.
// Listings carry no ordering guarantee; callers impose their own.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Storage is the interface for reading and writing objects.
type Storage interface {
	// Put streams data to the store under the given key.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Get reads the full object under key. Returns ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns every object whose key starts with prefix, in store order.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Delete removes an object identified by key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
	// PresignedPut returns a time-limited URL that allows a single PUT of the
	// object directly against the store, without proxying bytes through the
	// service.
	PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
