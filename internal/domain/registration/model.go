package registration

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyAccountID = errors.New("account ID cannot be empty")
	ErrEmptyRole      = errors.New("role cannot be empty")
)

// Registration is the immutable historical record of a completed
// onboarding. Rows are created once and never updated or deleted, even
// when the account or campers they reference are later removed.
type Registration struct {
	ID          string
	AccountID   string
	Role        string // parent or counselor at time of registration
	CamperIDs   []string
	SubmittedAt time.Time
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Registration) Validate() error {
	if r.AccountID == "" {
		return ErrEmptyAccountID
	}
	if r.Role == "" {
		return ErrEmptyRole
	}
	if r.SubmittedAt.IsZero() {
		return errors.New("submitted_at must be set")
	}
	return nil
}
