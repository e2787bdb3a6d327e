package contact

import (
	"context"

	domain "fastbreak/internal/domain/contact"
)

// Store persists emergency contacts.
type Store interface {
	Save(ctx context.Context, value domain.Contact) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
