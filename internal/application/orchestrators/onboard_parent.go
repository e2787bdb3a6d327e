package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/camper"
	"fastbreak/internal/domain/contact"
	"fastbreak/internal/domain/guardian"
	"fastbreak/internal/domain/onboarding"
	"fastbreak/internal/domain/registration"
)

// ErrEmailTaken is returned when the onboarding email already has an
// account.
var ErrEmailTaken = errors.New("an account with this email already exists")

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// CamperSaver persists campers.
type CamperSaver interface {
	Save(ctx context.Context, c camper.Camper) error
}

// GuardianSaver persists parent-camper links.
type GuardianSaver interface {
	Save(ctx context.Context, l guardian.Link) error
}

// ContactSaver persists emergency contacts.
type ContactSaver interface {
	Save(ctx context.Context, c contact.Contact) error
}

// RegistrationSaver appends registrations.
type RegistrationSaver interface {
	Save(ctx context.Context, r registration.Registration) error
}

// OnboardParentInput carries the submitted draft.
type OnboardParentInput struct {
	Draft onboarding.Draft

	IPAddress string
	UserAgent string
}

// OnboardParentDeps holds dependencies for OnboardParent.
type OnboardParentDeps struct {
	AccountStore      AccountStore
	CamperStore       CamperSaver
	GuardianStore     GuardianSaver
	ContactStore      ContactSaver
	RegistrationStore RegistrationSaver
	AuditStore        AuditSaver
	Email             WelcomeEmailDeps
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteOnboardParent commits a completed parent onboarding draft:
// account, campers, guardian links, emergency contacts, and the
// immutable registration record. The welcome email is best effort.
// PRE: draft passes every wizard step
// POST: Account and related rows persisted; returns the new account id
// INVARIANT: nothing is persisted for a draft that fails step validation
func ExecuteOnboardParent(ctx context.Context, input OnboardParentInput, deps OnboardParentDeps) (string, error) {
	// Replay the wizard's own gates server-side so a hand-crafted
	// request cannot bypass the UI.
	w := onboarding.NewParentWizard()
	w.Draft = input.Draft
	if err := w.BeginSubmit(); err != nil {
		return "", err
	}

	normEmail := account.NormalizeEmail(input.Draft.Email)
	if _, err := deps.AccountStore.GetByEmail(ctx, normEmail); err == nil {
		return "", ErrEmailTaken
	}

	acct := newAccountFromDraft(input.Draft, account.RoleParent, deps.GenerateID(), deps.Now())
	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", fmt.Errorf("failed to save account: %w", err)
	}

	var camperIDs []string
	for _, c := range input.Draft.Campers {
		if c.ID == "" {
			c.ID = deps.GenerateID()
		}
		if err := deps.CamperStore.Save(ctx, c); err != nil {
			return "", fmt.Errorf("failed to save camper: %w", err)
		}
		camperIDs = append(camperIDs, c.ID)
		link := guardian.Link{ID: deps.GenerateID(), ParentID: acct.ID, CamperID: c.ID}
		if err := deps.GuardianStore.Save(ctx, link); err != nil {
			return "", fmt.Errorf("failed to link camper: %w", err)
		}
	}

	for _, c := range input.Draft.Contacts {
		c.ID = deps.GenerateID()
		c.ParentID = acct.ID
		if err := deps.ContactStore.Save(ctx, c); err != nil {
			return "", fmt.Errorf("failed to save contact: %w", err)
		}
	}

	reg := registration.Registration{
		ID:          deps.GenerateID(),
		AccountID:   acct.ID,
		Role:        account.RoleParent,
		CamperIDs:   camperIDs,
		SubmittedAt: deps.Now(),
	}
	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return "", fmt.Errorf("failed to save registration: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(acct.ID, acct.Email, acct.Role, audit.CategoryRegistration, audit.ActionSubmit).
			WithResource("registration", reg.ID).
			WithDescription(fmt.Sprintf("parent onboarding with %d campers", len(camperIDs))).
			WithRequest(input.IPAddress, input.UserAgent)
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	ExecuteWelcomeEmail(ctx, WelcomeEmailInput{To: acct.Email, Name: acct.Name, Role: acct.Role}, deps.Email)

	slog.Info("onboarding_event", "flow", "parent", "account_id", acct.ID, "campers", len(camperIDs))
	return acct.ID, nil
}

// newAccountFromDraft builds the account row for a completed draft.
// A bcrypt failure degrades to an account that cannot log in yet
// rather than losing the whole registration.
func newAccountFromDraft(d onboarding.Draft, role, id string, now time.Time) account.Account {
	acct := account.Account{
		ID:                 id,
		Name:               d.Name,
		Email:              account.NormalizeEmail(d.Email),
		Phone:              d.Phone,
		Role:               role,
		AuthMethod:         account.AuthNone,
		ShirtSize:          d.ShirtSize,
		Bio:                d.Bio,
		OnboardingComplete: true,
		CreatedAt:          now,
	}
	switch {
	case d.ExternalAuth:
		acct.AuthMethod = account.AuthExternal
	default:
		if err := acct.SetPassword(d.Password); err != nil {
			slog.Warn("password_hash_failed", "error", err)
			acct.AuthMethod = account.AuthNone
		}
	}
	return acct
}
