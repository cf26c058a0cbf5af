package storage

import (
	"context"
	"io"
)

// Image is the canonical stored-image reference: the public URL plus
// the host-side id needed to delete it later.
type Image struct {
	URL       string
	StorageID string
}

// ImageStorage is the external image host: bytes in, durable reference
// out. Backends are selected by config at startup.
type ImageStorage interface {
	Upload(ctx context.Context, reader io.Reader, filename string) (*Image, error)
	Delete(ctx context.Context, storageID string) error
}
