package camper

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxNotesLength = 1000
)

// ValidGrades lists the school grades the camp accepts.
var ValidGrades = []string{"K", "1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th"}

// Domain errors
var (
	ErrEmptyName        = errors.New("camper name cannot be empty")
	ErrInvalidBirthdate = errors.New("birthdate must be in YYYY-MM-DD format")
	ErrInvalidGrade     = errors.New("grade must be K through 8th")
)

// Camper is a child registered for camp. Campers are linked to parent
// accounts through Link rows (many-to-many: blended families share
// campers across two parent accounts).
type Camper struct {
	ID        string
	Name      string
	Birthdate string // YYYY-MM-DD
	Grade     string
	Allergies string
	Notes     string
}

// Validate checks if the Camper has valid data.
// PRE: Camper struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Camper) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("camper name cannot exceed 100 characters")
	}
	if _, err := time.Parse("2006-01-02", c.Birthdate); err != nil {
		return ErrInvalidBirthdate
	}
	if !IsValidGrade(c.Grade) {
		return ErrInvalidGrade
	}
	if len(c.Notes) > MaxNotesLength {
		return errors.New("notes cannot exceed 1000 characters")
	}
	return nil
}

// IsComplete reports whether the camper entry is fully specified.
// The onboarding roster step only counts complete entries.
// INVARIANT: Camper fields are not mutated
func (c *Camper) IsComplete() bool {
	return c.Validate() == nil
}

// IsValidGrade reports whether g is an accepted school grade.
func IsValidGrade(g string) bool {
	for _, v := range ValidGrades {
		if v == g {
			return true
		}
	}
	return false
}
