package content

import (
	"context"

	domain "fastbreak/internal/domain/content"
)

// Store persists the singleton site content document.
type Store interface {
	Get(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, value domain.Document) error
}
