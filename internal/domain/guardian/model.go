package guardian

import "errors"

// Domain errors
var (
	ErrEmptyParentID = errors.New("parent ID cannot be empty")
	ErrEmptyCamperID = errors.New("camper ID cannot be empty")
)

// Link ties one parent account to one camper. Many-to-many: a camper
// may be linked from two households, a parent from many campers.
type Link struct {
	ID       string
	ParentID string
	CamperID string
}

// Validate checks if the Link has valid data.
// PRE: Link struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Link) Validate() error {
	if l.ParentID == "" {
		return ErrEmptyParentID
	}
	if l.CamperID == "" {
		return ErrEmptyCamperID
	}
	return nil
}
