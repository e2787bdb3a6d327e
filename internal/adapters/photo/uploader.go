package photo

import (
	"context"
	"strings"
)

// Uploader stores a counselor profile photo and returns its hosted URL.
type Uploader interface {
	Upload(ctx context.Context, base64Data string) (string, error)
}

// IsURL reports whether s already looks like a hosted photo URL rather
// than raw image data.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
