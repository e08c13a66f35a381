// Package document stores the raw bytes of uploaded files, keyed by the
// ingested file id. It backs previews and honors the auto-delete-uploads
// setting after synthesis.
package document

import (
	"context"
	"errors"
)

// Store holds uploaded document blobs.
type Store interface {
	Put(ctx context.Context, id, contentType string, content []byte) error
	Get(ctx context.Context, id string) ([]byte, string, error)
	Delete(ctx context.Context, id string) error
	// URL returns a direct download URL when the backend supports one,
	// empty string otherwise.
	URL(ctx context.Context, id string) (string, error)
}

var ErrNotFound = errors.New("document not found")
