// Package storage persists generated filing documents. The store is keyed by
// relative paths so the backend can later move from local disk to object
// storage without touching callers.
package storage

import "context"

type DocumentStore interface {
	// Put writes the document and returns its storage path.
	Put(ctx context.Context, path string, data []byte) (string, error)

	// Get retrieves a document by path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists checks whether a document is present.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, path string) error
}
