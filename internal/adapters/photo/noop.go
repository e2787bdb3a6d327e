package photo

import (
	"context"
	"log/slog"
)

// NoopUploader discards photos. Used in development and tests where no
// bucket is configured; the account simply keeps an empty photo URL.
type NoopUploader struct{}

// NewNoopUploader creates a new NoopUploader.
func NewNoopUploader() *NoopUploader {
	return &NoopUploader{}
}

// Upload logs and discards the photo.
// POST: Returns an empty URL and no error
func (u *NoopUploader) Upload(_ context.Context, base64Data string) (string, error) {
	slog.Info("noop_photo_upload", "bytes", len(base64Data))
	return "", nil
}
