package contact

import (
	"errors"
	"strings"

	"fastbreak/internal/domain/account"
)

// MinPerFamily is the emergency-contact minimum a family is asked for.
// The enrolling parent counts as one; falling short is a soft warning
// at onboarding, never a hard block.
const MinPerFamily = 2

// Domain errors
var (
	ErrEmptyName    = errors.New("contact name cannot be empty")
	ErrInvalidPhone = errors.New("contact phone must be 10 digits")
)

// Contact is an emergency contact owned by a parent account.
type Contact struct {
	ID           string
	ParentID     string
	Name         string
	Relationship string
	Phone        string
}

// Validate checks if the Contact has valid data.
// PRE: Contact struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !account.IsValidPhone(c.Phone) {
		return ErrInvalidPhone
	}
	return nil
}
