package storage

import "context"

// BlobStore abstracts binary blob storage for uploaded images. Keys are
// opaque "folder/filename" paths; the store maps them to retrievable
// locations.
type BlobStore interface {
	// Put stores data under key and returns a URL the stored object can
	// be referenced by.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Get retrieves the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
