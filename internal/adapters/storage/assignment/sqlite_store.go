package assignment

import (
	"context"
	"fmt"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/assignment"
)

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AssignmentStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetPod retrieves one counselor's pod for a slot. An absent pod
// returns an empty roster, not an error.
// PRE: date, session, counselorID are non-empty
// POST: Returns the pod with campers in saved order
func (s *SQLiteStore) GetPod(ctx context.Context, date, session, counselorID string) (domain.Pod, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT camper_id FROM assignment
		 WHERE date = ? AND session = ? AND counselor_id = ? ORDER BY position ASC`,
		date, session, counselorID)
	if err != nil {
		return domain.Pod{}, err
	}
	defer rows.Close()

	pod := domain.Pod{Date: date, Session: session, CounselorID: counselorID}
	for rows.Next() {
		var camperID string
		if err := rows.Scan(&camperID); err != nil {
			return domain.Pod{}, err
		}
		pod.CamperIDs = append(pod.CamperIDs, camperID)
	}
	return pod, rows.Err()
}

// SavePod replaces the pod's rows in one transaction. An empty roster
// deletes the pod entirely.
// PRE: pod is valid
// POST: The slot+counselor rows exactly match pod.CamperIDs in order
func (s *SQLiteStore) SavePod(ctx context.Context, pod domain.Pod) error {
	if err := pod.Validate(); err != nil {
		return fmt.Errorf("invalid pod: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM assignment WHERE date = ? AND session = ? AND counselor_id = ?",
		pod.Date, pod.Session, pod.CounselorID); err != nil {
		return err
	}
	for i, camperID := range pod.CamperIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO assignment (date, session, counselor_id, camper_id, position) VALUES (?, ?, ?, ?, ?)",
			pod.Date, pod.Session, pod.CounselorID, camperID, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListBySlot returns every pod for a date+session board.
// PRE: date and session are non-empty
// POST: Returns pods grouped by counselor, campers in saved order
func (s *SQLiteStore) ListBySlot(ctx context.Context, date, session string) ([]domain.Pod, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT counselor_id, camper_id FROM assignment
		 WHERE date = ? AND session = ? ORDER BY counselor_id ASC, position ASC`,
		date, session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pods []domain.Pod
	byCounselor := make(map[string]int)
	for rows.Next() {
		var counselorID, camperID string
		if err := rows.Scan(&counselorID, &camperID); err != nil {
			return nil, err
		}
		idx, ok := byCounselor[counselorID]
		if !ok {
			pods = append(pods, domain.Pod{Date: date, Session: session, CounselorID: counselorID})
			idx = len(pods) - 1
			byCounselor[counselorID] = idx
		}
		pods[idx].CamperIDs = append(pods[idx].CamperIDs, camperID)
	}
	return pods, rows.Err()
}

// CountCampers returns how many campers a counselor has in one slot.
// Feeds the availability-toggle confirmation rule.
// PRE: counselorID, date, session are non-empty
// POST: Returns the assigned camper count, 0 when no pod exists
func (s *SQLiteStore) CountCampers(ctx context.Context, counselorID, date, session string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignment WHERE counselor_id = ? AND date = ? AND session = ?",
		counselorID, date, session).Scan(&count)
	return count, err
}

// DeleteByCounselor removes every pod keyed by the counselor. Used by
// cascade cleanup on counselor deletion.
// PRE: counselorID is non-empty
// POST: No assignment rows reference counselorID
func (s *SQLiteStore) DeleteByCounselor(ctx context.Context, counselorID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM assignment WHERE counselor_id = ?", counselorID)
	return err
}

// RemoveCamperEverywhere filters a camper out of every pod in every
// slot. Used by cascade cleanup on camper deletion.
// PRE: camperID is non-empty
// POST: No assignment rows reference camperID
func (s *SQLiteStore) RemoveCamperEverywhere(ctx context.Context, camperID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM assignment WHERE camper_id = ?", camperID)
	return err
}
