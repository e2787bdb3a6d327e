package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fastbreak/internal/adapters/photo"
	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/availability"
	"fastbreak/internal/domain/onboarding"
	"fastbreak/internal/domain/registration"
)

// OnboardCounselorInput carries the submitted draft.
type OnboardCounselorInput struct {
	Draft onboarding.Draft

	IPAddress string
	UserAgent string
}

// OnboardCounselorDeps holds dependencies for OnboardCounselor.
type OnboardCounselorDeps struct {
	AccountStore      AccountStore
	ContactStore      ContactSaver
	RegistrationStore RegistrationSaver
	AvailabilityStore AvailabilityStore
	ScheduleStore     ScheduleMirrorStore
	AuditStore        AuditSaver
	Uploader          photo.Uploader
	Email             WelcomeEmailDeps
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteOnboardCounselor commits a completed counselor onboarding
// draft: account with profile, emergency contacts, pre-declared
// availability picks (with the schedule mirror), and the registration
// record. Photo upload and welcome email are best effort.
// PRE: draft passes every wizard step
// POST: Account and related rows persisted; returns the new account id
func ExecuteOnboardCounselor(ctx context.Context, input OnboardCounselorInput, deps OnboardCounselorDeps) (string, error) {
	w := onboarding.NewCounselorWizard()
	w.Draft = input.Draft
	if err := w.BeginSubmit(); err != nil {
		return "", err
	}

	normEmail := account.NormalizeEmail(input.Draft.Email)
	if _, err := deps.AccountStore.GetByEmail(ctx, normEmail); err == nil {
		return "", ErrEmailTaken
	}

	acct := newAccountFromDraft(input.Draft, account.RoleCounselor, deps.GenerateID(), deps.Now())

	// A re-submitted draft can carry a photo that is already hosted;
	// keep its URL instead of uploading again. A failed upload never
	// blocks onboarding; the counselor just has no photo until they
	// retry from their profile.
	if photo.IsURL(input.Draft.PhotoBase64) {
		acct.PhotoURL = input.Draft.PhotoBase64
	} else if input.Draft.PhotoBase64 != "" && deps.Uploader != nil {
		url, err := deps.Uploader.Upload(ctx, input.Draft.PhotoBase64)
		if err != nil {
			slog.Warn("photo_upload_failed", "error", err)
		} else {
			acct.PhotoURL = url
		}
	}

	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", fmt.Errorf("failed to save account: %w", err)
	}

	for _, c := range input.Draft.Contacts {
		c.ID = deps.GenerateID()
		c.ParentID = acct.ID
		if err := deps.ContactStore.Save(ctx, c); err != nil {
			return "", fmt.Errorf("failed to save contact: %w", err)
		}
	}

	// Pre-declared picks land as available slots and flow straight
	// into the admin mirror.
	mirrorDeps := ToggleAvailabilityDeps{AvailabilityStore: deps.AvailabilityStore, ScheduleStore: deps.ScheduleStore}
	touched := make(map[string]bool)
	for _, p := range input.Draft.Picks {
		rec := availability.Record{CounselorID: acct.ID, Date: p.Date, Session: p.Session, State: availability.StateAvailable}
		if err := deps.AvailabilityStore.Set(ctx, rec); err != nil {
			return "", fmt.Errorf("failed to save availability pick: %w", err)
		}
		touched[p.Date] = true
	}
	for date := range touched {
		if err := rewriteMirrorDay(ctx, mirrorDeps, acct.ID, date); err != nil {
			return "", err
		}
	}

	reg := registration.Registration{
		ID:          deps.GenerateID(),
		AccountID:   acct.ID,
		Role:        account.RoleCounselor,
		SubmittedAt: deps.Now(),
	}
	if err := deps.RegistrationStore.Save(ctx, reg); err != nil {
		return "", fmt.Errorf("failed to save registration: %w", err)
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(acct.ID, acct.Email, acct.Role, audit.CategoryRegistration, audit.ActionSubmit).
			WithResource("registration", reg.ID).
			WithDescription(fmt.Sprintf("counselor onboarding with %d availability picks", len(input.Draft.Picks))).
			WithRequest(input.IPAddress, input.UserAgent)
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	ExecuteWelcomeEmail(ctx, WelcomeEmailInput{To: acct.Email, Name: acct.Name, Role: acct.Role}, deps.Email)

	slog.Info("onboarding_event", "flow", "counselor", "account_id", acct.ID, "picks", len(input.Draft.Picks))
	return acct.ID, nil
}
