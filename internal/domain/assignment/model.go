package assignment

import (
	"errors"

	"fastbreak/internal/domain/availability"
)

// MaxPodSize caps the campers one counselor supervises per session.
const MaxPodSize = 12

// Domain errors
var (
	ErrEmptyCounselorID = errors.New("counselor ID cannot be empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidSession   = errors.New("session must be 'morning' or 'afternoon'")
	ErrPodTooLarge      = errors.New("pod exceeds maximum size")
	ErrDuplicateCamper  = errors.New("camper already assigned to this pod")
)

// Pod is the set of campers assigned to one counselor for one
// date+session slot.
type Pod struct {
	Date        string
	Session     string
	CounselorID string
	CamperIDs   []string
}

// Validate checks if the Pod has valid data.
// PRE: Pod struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Pod) Validate() error {
	if p.CounselorID == "" {
		return ErrEmptyCounselorID
	}
	rec := availability.Record{CounselorID: p.CounselorID, Date: p.Date, Session: p.Session, State: availability.StateAvailable}
	if err := rec.Validate(); err != nil {
		switch err {
		case availability.ErrInvalidDate:
			return ErrInvalidDate
		case availability.ErrInvalidSession:
			return ErrInvalidSession
		}
		return err
	}
	if len(p.CamperIDs) > MaxPodSize {
		return ErrPodTooLarge
	}
	seen := make(map[string]bool, len(p.CamperIDs))
	for _, id := range p.CamperIDs {
		if seen[id] {
			return ErrDuplicateCamper
		}
		seen[id] = true
	}
	return nil
}

// SlotKey returns the "date_session" key this pod belongs to.
// INVARIANT: Pod fields are not mutated
func (p *Pod) SlotKey() string {
	return availability.SlotKey(p.Date, p.Session)
}

// RemoveCamper filters a camper id out of the pod roster.
// POST: CamperIDs no longer contains camperID; returns true if removed
func (p *Pod) RemoveCamper(camperID string) bool {
	kept := p.CamperIDs[:0]
	removed := false
	for _, id := range p.CamperIDs {
		if id == camperID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	p.CamperIDs = kept
	return removed
}
