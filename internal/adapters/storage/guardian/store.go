package guardian

import (
	"context"

	domain "fastbreak/internal/domain/guardian"
)

// Store persists parent-camper links.
type Store interface {
	Save(ctx context.Context, value domain.Link) error
	ListCamperIDsByParent(ctx context.Context, parentID string) ([]string, error)
	ListParentIDsByCamper(ctx context.Context, camperID string) ([]string, error)
	DeleteByParent(ctx context.Context, parentID string) error
	DeleteByCamper(ctx context.Context, camperID string) error
}
