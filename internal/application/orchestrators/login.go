package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/audit"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string

	IPAddress string
	UserAgent string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID string
	Email     string
	Name      string
	Role      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	AuditStore   AuditSaver
	Now          func() time.Time
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Valid email and password provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, account.NormalizeEmail(input.Email))
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", acct.Email, "reason", "locked")
		saveSecurityEvent(ctx, deps.AuditStore, acct, "login attempt on locked account", input)
		return LoginResult{}, ErrAccountLocked
	}

	// External and admin-created accounts have no password to check.
	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "email", acct.Email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		if acct.IsLocked() {
			saveSecurityEvent(ctx, deps.AuditStore, acct, "account locked after repeated failures", input)
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "email", acct.Email, "role", acct.Role)

	return LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		Name:      acct.Name,
		Role:      acct.Role,
	}, nil
}

func saveSecurityEvent(ctx context.Context, store AuditSaver, acct account.Account, desc string, input LoginInput) {
	if store == nil {
		return
	}
	event := audit.NewEvent(acct.ID, acct.Email, acct.Role, audit.CategorySecurity, audit.ActionLogin).
		WithSeverity(audit.SeverityWarning).
		WithDescription(desc).
		WithRequest(input.IPAddress, input.UserAgent)
	if err := store.Save(ctx, event); err != nil {
		slog.Error("audit_save_failed", "error", err)
	}
}
