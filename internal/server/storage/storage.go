// Package storage holds the object-store abstraction backing submission
// binaries and its S3 implementation.
package storage

import (
	"context"
	"io"
)

// ObjectStore persists submission binaries. PublicURL must return a
// dereferenceable address for a previously stored key.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, keys ...string) error
	PublicURL(key string) string
}
