package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Presigned URLs are short-lived; clients are expected to use them
// immediately.
const DefaultURLExpiry = 15 * time.Minute

// Image types accepted for profile photos. Anything else falls back to JPEG.
var photoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoContentType normalizes the content type a client announced for a
// photo upload.
func PhotoContentType(contentType string) string {
	if photoContentTypes[contentType] {
		return contentType
	}
	return "image/jpeg"
}

// PhotoKey mints the object key for a new profile photo of the given user.
// Keys are never reused: replacing a photo writes a fresh object and the old
// one is deleted after the swap.
func PhotoKey(userID uuid.UUID) string {
	return fmt.Sprintf("profiles/%s/%s", userID, uuid.NewString())
}

// PhotoStorage holds profile photo objects. The server never proxies photo
// bytes; it mints presigned URLs for direct client access and deletes
// replaced objects.
type PhotoStorage interface {
	// PresignUpload returns a temporary URL accepting a PUT of the object.
	// The client must send the same Content-Type header on upload.
	PresignUpload(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)

	// PresignDownload returns a temporary URL serving a GET of the object.
	PresignDownload(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// Delete removes the object.
	Delete(ctx context.Context, objectKey string) error
}
