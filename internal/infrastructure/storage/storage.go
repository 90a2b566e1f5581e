// Package storage provides object storage implementations for scraped
// competitor images.
package storage

import (
	"context"
	"time"
)

// ObjectStorage stores binary objects and hands out time-limited download URLs.
type ObjectStorage interface {
	// Upload writes an object under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned URL for the object and its expiry
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
