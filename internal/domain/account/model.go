package account

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// Role constants
const (
	RoleAdmin     = "admin"
	RoleCounselor = "counselor"
	RoleParent    = "parent"
)

// AuthMethod constants. A "none" account was created by an admin on a
// family's behalf and cannot log in until upgraded to "password".
const (
	AuthPassword = "password"
	AuthExternal = "external"
	AuthNone     = "none"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 4

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleCounselor, RoleParent}

// Domain errors
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrInvalidPhone     = errors.New("phone must be 10 digits")
	ErrInvalidRole      = errors.New("role must be one of: admin, counselor, parent")
	ErrInvalidAuth      = errors.New("auth method must be one of: password, external, none")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrCannotLogIn      = errors.New("account has no login credentials")
)

// emailPattern is the RFC-lite check used at registration time.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Account holds identity and credentials for every role.
type Account struct {
	ID                 string
	Name               string
	Email              string
	Phone              string
	Role               string
	AuthMethod         string
	PasswordHash       string
	PhotoURL           string
	ShirtSize          string
	Bio                string
	OnboardingComplete bool
	CreatedAt          time.Time
	FailedLogins       int
	LockedUntil        time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmptyEmail
	}
	if len(a.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !IsValidEmail(a.Email) {
		return ErrInvalidEmail
	}
	if a.Phone != "" && !IsValidPhone(a.Phone) {
		return ErrInvalidPhone
	}
	if !isValidRole(a.Role) {
		return ErrInvalidRole
	}
	if a.AuthMethod != AuthPassword && a.AuthMethod != AuthExternal && a.AuthMethod != AuthNone {
		return ErrInvalidAuth
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty and >= 4 characters
// POST: PasswordHash is set, AuthMethod is password
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	a.AuthMethod = AuthPassword
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: account was created with AuthMethod=password
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.AuthMethod != AuthPassword || a.PasswordHash == "" {
		return ErrCannotLogIn
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the account is currently locked out.
// INVARIANT: Account fields are not mutated
func (a *Account) IsLocked() bool {
	if a.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(a.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the account after 5 failures.
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (a *Account) RecordFailedLogin() {
	a.FailedLogins++
	if a.FailedLogins >= 5 {
		a.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// POST: FailedLogins is 0, LockedUntil is zero
func (a *Account) ResetFailedLogins() {
	a.FailedLogins = 0
	a.LockedUntil = time.Time{}
}

// IsAdmin returns true if the account has admin role.
// INVARIANT: Account fields are not mutated
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsValidEmail reports whether s passes the RFC-lite shape check.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhone reports whether s contains exactly 10 digits, ignoring
// common separators ("(", ")", "-", ".", spaces).
func IsValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// separator, ignore
		default:
			return false
		}
	}
	return digits == 10
}

// NormalizeEmail lowercases and trims an email for case-insensitive
// uniqueness checks.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
