package availability

import (
	"errors"
	"fmt"
	"time"
)

// Session constants for the two fixed daily blocks.
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
)

// ValidSessions contains all valid session values.
var ValidSessions = []string{SessionMorning, SessionAfternoon}

// State represents a counselor's declared availability for one session.
type State string

// Tri-state values. Unset is the absence of a declaration.
const (
	StateUnset       State = "unset"
	StateAvailable   State = "available"
	StateUnavailable State = "unavailable"
)

// Domain errors
var (
	ErrEmptyCounselorID = errors.New("counselor ID cannot be empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidSession   = errors.New("session must be 'morning' or 'afternoon'")
	ErrInvalidState     = errors.New("state must be 'available' or 'unavailable'")
)

// DateLayout is the storage format for camp dates.
const DateLayout = "2006-01-02"

// Record is one declared session state. Unset sessions have no Record.
type Record struct {
	CounselorID string
	Date        string // YYYY-MM-DD
	Session     string // morning, afternoon
	State       State  // available or unavailable, never unset
}

// Validate checks if the Record has valid data.
// PRE: Record struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Record) Validate() error {
	if r.CounselorID == "" {
		return ErrEmptyCounselorID
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	if !IsValidSession(r.Session) {
		return ErrInvalidSession
	}
	if r.State != StateAvailable && r.State != StateUnavailable {
		return ErrInvalidState
	}
	return nil
}

// Next returns the successor in the toggle cycle.
// Total function: unset → available → unavailable → unset.
// INVARIANT: three applications return the argument unchanged
func Next(s State) State {
	switch s {
	case StateUnset:
		return StateAvailable
	case StateAvailable:
		return StateUnavailable
	default:
		return StateUnset
	}
}

// Day is the two-list view of one calendar date, as dashboards consume it.
// INVARIANT: a session appears in at most one of the two lists.
type Day struct {
	Date        string   `json:"date"`
	Available   []string `json:"available"`
	Unavailable []string `json:"unavailable"`
}

// StateOf returns the tri-state for a session within the day.
// INVARIANT: Day fields are not mutated
func (d Day) StateOf(session string) State {
	for _, s := range d.Available {
		if s == session {
			return StateAvailable
		}
	}
	for _, s := range d.Unavailable {
		if s == session {
			return StateUnavailable
		}
	}
	return StateUnset
}

// DayFromRecords folds per-session records into the two-list day shape.
// PRE: all records share the same date
// POST: each session lands in exactly one list; unset sessions in neither
func DayFromRecords(date string, records []Record) Day {
	d := Day{Date: date}
	for _, r := range records {
		switch r.State {
		case StateAvailable:
			d.Available = append(d.Available, r.Session)
		case StateUnavailable:
			d.Unavailable = append(d.Unavailable, r.Session)
		}
	}
	return d
}

// MonthDates returns every date of the given calendar month in order.
// PRE: month is 1..12
// POST: Returns 28-31 dates formatted as YYYY-MM-DD
func MonthDates(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var dates []string
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// IsValidSession reports whether s is one of the two camp sessions.
func IsValidSession(s string) bool {
	for _, v := range ValidSessions {
		if v == s {
			return true
		}
	}
	return false
}

// SlotKey builds the "date_session" key used by the assignment board.
// PRE: date is YYYY-MM-DD, session is valid
func SlotKey(date, session string) string {
	return fmt.Sprintf("%s_%s", date, session)
}
