package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/audit"
)

// GuardianByParentDeleter removes links owned by a parent.
type GuardianByParentDeleter interface {
	DeleteByParent(ctx context.Context, parentID string) error
}

// ContactByOwnerDeleter removes contacts owned by an account.
type ContactByOwnerDeleter interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// DeleteParentInput carries input for the orchestrator.
type DeleteParentInput struct {
	ParentID string

	ActorID    string
	ActorEmail string
	ActorRole  string
}

// DeleteParentDeps holds dependencies for DeleteParent.
type DeleteParentDeps struct {
	AccountStore  AccountRemover
	GuardianStore GuardianByParentDeleter
	ContactStore  ContactByOwnerDeleter
	AuditStore    AuditSaver
}

// ExecuteDeleteParent removes a parent account, its guardian links,
// and its emergency contacts. Campers themselves remain; they may be
// linked to another parent. Registrations stay untouched.
// PRE: id names an existing parent account
// POST: No guardian link or contact references the id
func ExecuteDeleteParent(ctx context.Context, input DeleteParentInput, deps DeleteParentDeps) error {
	acct, err := deps.AccountStore.GetByID(ctx, input.ParentID)
	if err != nil {
		return fmt.Errorf("parent not found: %w", err)
	}
	if acct.Role != account.RoleParent {
		return fmt.Errorf("account %s is not a parent", input.ParentID)
	}

	if err := deps.GuardianStore.DeleteByParent(ctx, input.ParentID); err != nil {
		return fmt.Errorf("failed to remove guardian links: %w", err)
	}
	if err := deps.ContactStore.DeleteByOwner(ctx, input.ParentID); err != nil {
		return fmt.Errorf("failed to remove contacts: %w", err)
	}
	if err := deps.AccountStore.Delete(ctx, input.ParentID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.ActorID, input.ActorEmail, input.ActorRole, audit.CategoryAccount, audit.ActionDelete).
			WithResource("parent", input.ParentID).
			WithDescription(fmt.Sprintf("deleted parent %s with cascade", acct.Email)).
			WithSeverity(audit.SeverityWarning)
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("account_event", "action", "delete_parent", "parent_id", input.ParentID)
	return nil
}
