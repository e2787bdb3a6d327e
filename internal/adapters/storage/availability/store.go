package availability

import (
	"context"

	domain "fastbreak/internal/domain/availability"
)

// Store persists per-session availability declarations. Unset sessions
// have no row; setting a session to unset deletes its row.
type Store interface {
	Get(ctx context.Context, counselorID, date, session string) (domain.State, error)
	Set(ctx context.Context, record domain.Record) error
	Clear(ctx context.Context, counselorID, date, session string) error
	ListMonth(ctx context.Context, counselorID, yearMonth string) ([]domain.Record, error)
	SetMonth(ctx context.Context, counselorID string, records []domain.Record) error
	ClearMonth(ctx context.Context, counselorID, yearMonth string) error
	DeleteByCounselor(ctx context.Context, counselorID string) error
}
