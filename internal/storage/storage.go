package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations. Health
// documents (lab reports, scans) are uploaded and downloaded directly by
// the client via presigned URLs; the API never proxies the bytes.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT
	// requests for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// DocumentKey builds the object key for a user-uploaded health document.
// Keys are namespaced per user and made unique with a UUID so repeated
// uploads of the same filename never collide.
func DocumentKey(userID, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("health-documents/%s/%s%s", userID, uuid.NewString(), ext)
}
