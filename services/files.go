package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cmspro/cmspro-api/services/spaces"
)

// FileStorage is the slice of object storage the content handlers need:
// upload a stream under a key, delete a key, and turn a stored key into
// a public URL. The Spaces client satisfies it in production; tests use
// an in-memory fake.
type FileStorage interface {
	UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// ResolveFileURL maps a stored object key to its public URL. Empty keys
// resolve to nil so JSON omits the field cleanly.
func ResolveFileURL(storage FileStorage, key string) *string {
	if key == "" || storage == nil {
		return nil
	}
	url := storage.GetFileURL(key)
	return &url
}

// StoreUpload streams a validated multipart file into storage under a
// timestamped key below prefix and returns the stored key.
func StoreUpload(ctx context.Context, storage FileStorage, prefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := spaces.GenerateKey(prefix, file.Filename)
	if _, err := storage.UploadFile(ctx, key, src, spaces.GetContentType(file.Filename)); err != nil {
		return "", err
	}
	return key, nil
}
