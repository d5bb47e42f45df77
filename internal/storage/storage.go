package storage

import (
	"context"
	"io"
)

// Store persists uploaded images and resolves their public URLs. The key is
// a path relative to the backend root, e.g. "donation_images/<id>.jpg".
type Store interface {
	Upload(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
