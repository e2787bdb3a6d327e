package assignment

import (
	"context"

	domain "fastbreak/internal/domain/assignment"
)

// Store persists assignment pods. A pod is stored as one row per
// camper; saving a pod replaces its rows atomically.
type Store interface {
	GetPod(ctx context.Context, date, session, counselorID string) (domain.Pod, error)
	SavePod(ctx context.Context, pod domain.Pod) error
	ListBySlot(ctx context.Context, date, session string) ([]domain.Pod, error)
	CountCampers(ctx context.Context, counselorID, date, session string) (int, error)
	DeleteByCounselor(ctx context.Context, counselorID string) error
	RemoveCamperEverywhere(ctx context.Context, camperID string) error
}
