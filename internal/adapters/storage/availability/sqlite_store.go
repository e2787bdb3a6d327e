package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/availability"
)

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AvailabilityStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the declared state for one slot, StateUnset when no row
// exists.
// PRE: counselorID, date, session are non-empty
// POST: Returns unset/available/unavailable, never an error for absence
func (s *SQLiteStore) Get(ctx context.Context, counselorID, date, session string) (domain.State, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT state FROM availability WHERE counselor_id = ? AND date = ? AND session = ?",
		counselorID, date, session)
	var state string
	err := row.Scan(&state)
	if err == sql.ErrNoRows {
		return domain.StateUnset, nil
	}
	if err != nil {
		return domain.StateUnset, err
	}
	return domain.State(state), nil
}

// Set upserts one declared session.
// PRE: record is valid (state available or unavailable)
// POST: The slot has exactly one row holding record.State
func (s *SQLiteStore) Set(ctx context.Context, record domain.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid availability record: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO availability (id, counselor_id, date, session, state) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(counselor_id, date, session) DO UPDATE SET state=excluded.state`,
		uuid.New().String(), record.CounselorID, record.Date, record.Session, string(record.State))
	return err
}

// Clear deletes one declared session, returning the slot to unset.
// PRE: counselorID, date, session are non-empty
// POST: No row exists for the slot
func (s *SQLiteStore) Clear(ctx context.Context, counselorID, date, session string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM availability WHERE counselor_id = ? AND date = ? AND session = ?",
		counselorID, date, session)
	return err
}

// ListMonth returns every declared record for a counselor in a month.
// PRE: yearMonth is YYYY-MM
// POST: Returns records ordered by date then session
func (s *SQLiteStore) ListMonth(ctx context.Context, counselorID, yearMonth string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT counselor_id, date, session, state FROM availability
		 WHERE counselor_id = ? AND date LIKE ? ORDER BY date ASC, session ASC`,
		counselorID, yearMonth+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var r domain.Record
		var state string
		if err := rows.Scan(&r.CounselorID, &r.Date, &r.Session, &state); err != nil {
			return nil, err
		}
		r.State = domain.State(state)
		records = append(records, r)
	}
	return records, rows.Err()
}

// SetMonth bulk-upserts declared sessions in one transaction. Used by
// mark-whole-month.
// PRE: all records belong to counselorID and are valid
// POST: Every record's slot holds its state; other slots untouched
func (s *SQLiteStore) SetMonth(ctx context.Context, counselorID string, records []domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		if r.CounselorID != counselorID {
			return fmt.Errorf("record counselor %q does not match %q", r.CounselorID, counselorID)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid availability record: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO availability (id, counselor_id, date, session, state) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(counselor_id, date, session) DO UPDATE SET state=excluded.state`,
			uuid.New().String(), r.CounselorID, r.Date, r.Session, string(r.State)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ClearMonth deletes every declared session for a counselor in a month.
// PRE: yearMonth is YYYY-MM
// POST: The counselor has no rows in the month
func (s *SQLiteStore) ClearMonth(ctx context.Context, counselorID, yearMonth string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM availability WHERE counselor_id = ? AND date LIKE ?",
		counselorID, yearMonth+"-%")
	return err
}

// DeleteByCounselor removes every availability row for a counselor.
// Used by cascade cleanup on counselor deletion.
// PRE: counselorID is non-empty
// POST: No availability rows reference counselorID
func (s *SQLiteStore) DeleteByCounselor(ctx context.Context, counselorID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM availability WHERE counselor_id = ?", counselorID)
	return err
}
