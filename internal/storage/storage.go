package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// PutObject uploads an object directly to the storage provider.
	// Used for server-generated artifacts such as preference exports.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
