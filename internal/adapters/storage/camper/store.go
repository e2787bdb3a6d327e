package camper

import (
	"context"

	domain "fastbreak/internal/domain/camper"
)

// Store persists Camper state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Camper, error)
	Save(ctx context.Context, value domain.Camper) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Camper, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Camper, error)
}
