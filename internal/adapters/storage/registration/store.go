package registration

import (
	"context"

	domain "fastbreak/internal/domain/registration"
)

// Store persists registrations. Rows are append-only: there is no
// update or delete, matching the domain's immutability.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	Save(ctx context.Context, value domain.Registration) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error)
	List(ctx context.Context, limit int) ([]domain.Registration, error)
}
