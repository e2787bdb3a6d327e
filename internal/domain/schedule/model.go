package schedule

import (
	"errors"

	"fastbreak/internal/domain/availability"
)

// Domain errors
var (
	ErrEmptyCounselorID = errors.New("counselor ID cannot be empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
)

// Entry is the admin-facing boolean mirror of one counselor's
// availability for one date. Keys are optional: a nil pointer means the
// session is undeclared, true means available, false unavailable.
// The mirror is denormalized on purpose: it is rewritten on every
// availability mutation so admin boards read one table with no join.
type Entry struct {
	CounselorID string
	Date        string // YYYY-MM-DD
	Morning     *bool
	Afternoon   *bool
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.CounselorID == "" {
		return ErrEmptyCounselorID
	}
	rec := availability.Record{CounselorID: e.CounselorID, Date: e.Date, Session: availability.SessionMorning, State: availability.StateAvailable}
	if err := rec.Validate(); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// IsEmpty reports whether neither session is declared. Empty entries
// are deleted rather than stored.
// INVARIANT: Entry fields are not mutated
func (e *Entry) IsEmpty() bool {
	return e.Morning == nil && e.Afternoon == nil
}

// FromDay derives the mirror entry for one counselor's day.
// POST: each declared session maps to a boolean; unset sessions stay nil
func FromDay(counselorID string, day availability.Day) Entry {
	e := Entry{CounselorID: counselorID, Date: day.Date}
	for _, s := range day.Available {
		e.set(s, true)
	}
	for _, s := range day.Unavailable {
		e.set(s, false)
	}
	return e
}

func (e *Entry) set(session string, v bool) {
	b := v
	switch session {
	case availability.SessionMorning:
		e.Morning = &b
	case availability.SessionAfternoon:
		e.Afternoon = &b
	}
}
