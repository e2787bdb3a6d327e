package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/content"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, a account.Account) error
}

// ContentStore persists the site content document.
type ContentStore interface {
	Get(ctx context.Context) (content.Document, error)
	Save(ctx context.Context, d content.Document) error
}

// SeedAdminInput carries the bootstrap admin credentials.
type SeedAdminInput struct {
	Email    string
	Name     string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	AuditStore   AuditSaver
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the bootstrap admin account when the
// account table is empty. A populated table is left alone so restarts
// never clobber real accounts.
// PRE: input.Email and input.Password are set when seeding is wanted
// POST: Exactly one admin exists on a fresh database
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if n > 0 {
		return nil
	}
	if input.Email == "" || input.Password == "" {
		slog.Warn("seed_admin_skipped", "reason", "no credentials configured")
		return nil
	}

	name := input.Name
	if name == "" {
		name = "Camp Director"
	}
	acct := account.Account{
		ID:                 deps.GenerateID(),
		Name:               name,
		Email:              account.NormalizeEmail(input.Email),
		Role:               account.RoleAdmin,
		OnboardingComplete: true,
		CreatedAt:          deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("failed to save seed admin: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(acct.ID, acct.Email, acct.Role, audit.CategorySystem, audit.ActionCreate).
			WithResource("account", acct.ID).
			WithDescription("seeded bootstrap admin account")
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("seed_event", "action", "seed_admin", "email", acct.Email)
	return nil
}

// SeedContentDeps holds dependencies for SeedContent.
type SeedContentDeps struct {
	ContentStore ContentStore
	Now          func() time.Time
}

// ExecuteSeedContent writes the default site content document when
// none has been saved yet.
// POST: ContentStore.Get succeeds afterwards
func ExecuteSeedContent(ctx context.Context, deps SeedContentDeps) error {
	_, err := deps.ContentStore.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read site content: %w", err)
	}

	doc := content.Defaults()
	doc.UpdatedAt = deps.Now()
	if err := deps.ContentStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to seed site content: %w", err)
	}

	slog.Info("seed_event", "action", "seed_content")
	return nil
}
