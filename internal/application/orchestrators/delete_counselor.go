package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/audit"
)

// AccountRemover reads and deletes accounts.
type AccountRemover interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Delete(ctx context.Context, id string) error
}

// CounselorCascadeStore removes every row keyed by a counselor.
type CounselorCascadeStore interface {
	DeleteByCounselor(ctx context.Context, counselorID string) error
}

// DeleteCounselorInput carries input for the orchestrator.
type DeleteCounselorInput struct {
	CounselorID string

	ActorID    string
	ActorEmail string
	ActorRole  string
}

// DeleteCounselorDeps holds dependencies for DeleteCounselor.
type DeleteCounselorDeps struct {
	AccountStore      AccountRemover
	AssignmentStore   CounselorCascadeStore
	AvailabilityStore CounselorCascadeStore
	ScheduleStore     CounselorCascadeStore
	AuditStore        AuditSaver
}

// ExecuteDeleteCounselor removes a counselor and cascades: every pod
// keyed by the counselor, every availability row, every mirror row.
// Registrations are historical and stay untouched.
// PRE: id names an existing counselor account
// POST: No assignment, availability, or mirror row references the id
func ExecuteDeleteCounselor(ctx context.Context, input DeleteCounselorInput, deps DeleteCounselorDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.CounselorID)
	if err != nil {
		return fmt.Errorf("counselor not found: %w", err)
	}
	if acct.Role != account.RoleCounselor {
		return fmt.Errorf("account %s is not a counselor", input.CounselorID)
	}

	if err := deps.AssignmentStore.DeleteByCounselor(ctx, input.CounselorID); err != nil {
		return fmt.Errorf("failed to remove assignments: %w", err)
	}
	if err := deps.AvailabilityStore.DeleteByCounselor(ctx, input.CounselorID); err != nil {
		return fmt.Errorf("failed to remove availability: %w", err)
	}
	if err := deps.ScheduleStore.DeleteByCounselor(ctx, input.CounselorID); err != nil {
		return fmt.Errorf("failed to remove schedule mirror: %w", err)
	}
	if err := deps.AccountStore.Delete(ctx, input.CounselorID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.ActorID, input.ActorEmail, input.ActorRole, audit.CategoryAccount, audit.ActionDelete).
			WithResource("counselor", input.CounselorID).
			WithDescription(fmt.Sprintf("deleted counselor %s with cascade", acct.Email)).
			WithSeverity(audit.SeverityWarning)
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("account_event", "action", "delete_counselor", "counselor_id", input.CounselorID)
	return nil
}
