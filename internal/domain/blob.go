package domain

import "context"

// BlobStore uploads opaque blobs (event backdrop images) and returns a
// public URL.
type BlobStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (publicURL string, err error)
}
