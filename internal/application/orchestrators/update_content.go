package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/content"
)

// UpdateContentInput carries the replacement document.
type UpdateContentInput struct {
	Document content.Document

	ActorID    string
	ActorEmail string
	ActorRole  string
}

// UpdateContentDeps holds dependencies for UpdateContent.
type UpdateContentDeps struct {
	ContentStore ContentStore
	AuditStore   AuditSaver
	Now          func() time.Time
}

// ExecuteUpdateContent replaces the site content document wholesale.
// PRE: document validates
// POST: subsequent reads return the new document
func ExecuteUpdateContent(ctx context.Context, input UpdateContentInput, deps UpdateContentDeps) error {
	doc := input.Document
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.UpdatedAt = deps.Now()
	doc.UpdatedByEmail = input.ActorEmail

	if err := deps.ContentStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save site content: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.ActorID, input.ActorEmail, input.ActorRole, audit.CategoryContent, audit.ActionUpdate).
			WithResource("content", content.DocumentID).
			WithDescription("updated site content")
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("content_event", "action", "update", "editor", input.ActorEmail)
	return nil
}
