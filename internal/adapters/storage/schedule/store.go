package schedule

import (
	"context"

	domain "fastbreak/internal/domain/schedule"
)

// Store persists the admin-facing schedule mirror. Entries with neither
// session declared are deleted, not stored.
type Store interface {
	Get(ctx context.Context, counselorID, date string) (domain.Entry, error)
	Save(ctx context.Context, entry domain.Entry) error
	ListByDate(ctx context.Context, date string) ([]domain.Entry, error)
	ListMonth(ctx context.Context, yearMonth string) ([]domain.Entry, error)
	DeleteByCounselor(ctx context.Context, counselorID string) error
}
