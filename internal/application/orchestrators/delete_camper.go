package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/camper"
)

// CamperRemover reads and deletes campers.
type CamperRemover interface {
	GetByID(ctx context.Context, id string) (camper.Camper, error)
	Delete(ctx context.Context, id string) error
}

// CamperAssignmentFilter filters a camper out of every pod.
type CamperAssignmentFilter interface {
	RemoveCamperEverywhere(ctx context.Context, camperID string) error
}

// GuardianByCamperDeleter removes links pointing at a camper.
type GuardianByCamperDeleter interface {
	DeleteByCamper(ctx context.Context, camperID string) error
}

// DeleteCamperInput carries input for the orchestrator.
type DeleteCamperInput struct {
	CamperID string

	ActorID    string
	ActorEmail string
	ActorRole  string
}

// DeleteCamperDeps holds dependencies for DeleteCamper.
type DeleteCamperDeps struct {
	CamperStore     CamperRemover
	AssignmentStore CamperAssignmentFilter
	GuardianStore   GuardianByCamperDeleter
	AuditStore      AuditSaver
}

// ExecuteDeleteCamper removes a camper and cascades: the id is
// filtered out of every pod in every assignment slot and every
// parent-camper link is removed. Registrations stay untouched.
// PRE: id names an existing camper
// POST: No assignment or guardian row references the id
func ExecuteDeleteCamper(ctx context.Context, input DeleteCamperInput, deps DeleteCamperDeps) error {
	c, err := deps.CamperStore.GetByID(ctx, input.CamperID)
	if err != nil {
		return fmt.Errorf("camper not found: %w", err)
	}

	if err := deps.AssignmentStore.RemoveCamperEverywhere(ctx, input.CamperID); err != nil {
		return fmt.Errorf("failed to remove assignments: %w", err)
	}
	if err := deps.GuardianStore.DeleteByCamper(ctx, input.CamperID); err != nil {
		return fmt.Errorf("failed to remove guardian links: %w", err)
	}
	if err := deps.CamperStore.Delete(ctx, input.CamperID); err != nil {
		return fmt.Errorf("failed to delete camper: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.ActorID, input.ActorEmail, input.ActorRole, audit.CategoryAccount, audit.ActionDelete).
			WithResource("camper", input.CamperID).
			WithDescription(fmt.Sprintf("deleted camper %s with cascade", c.Name)).
			WithSeverity(audit.SeverityWarning)
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("account_event", "action", "delete_camper", "camper_id", input.CamperID)
	return nil
}
