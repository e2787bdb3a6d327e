package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/schedule"
)

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ScheduleStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the mirror entry for one counselor and date. An absent
// row returns an empty entry, not an error.
// PRE: counselorID and date are non-empty
// POST: Returns the entry; Morning/Afternoon nil when undeclared
func (s *SQLiteStore) Get(ctx context.Context, counselorID, date string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT counselor_id, date, morning, afternoon FROM schedule_mirror WHERE counselor_id = ? AND date = ?",
		counselorID, date)
	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Entry{CounselorID: counselorID, Date: date}, nil
	}
	return entry, err
}

// Save upserts a mirror entry, deleting the row when the entry is
// empty. This keeps the mirror free of all-unset rows.
// PRE: entry is valid
// POST: Row matches entry, or is absent when entry.IsEmpty()
func (s *SQLiteStore) Save(ctx context.Context, entry domain.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid schedule entry: %w", err)
	}
	if entry.IsEmpty() {
		_, err := s.db.ExecContext(ctx,
			"DELETE FROM schedule_mirror WHERE counselor_id = ? AND date = ?",
			entry.CounselorID, entry.Date)
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO schedule_mirror (counselor_id, date, morning, afternoon) VALUES (?, ?, ?, ?)
		 ON CONFLICT(counselor_id, date) DO UPDATE SET morning=excluded.morning, afternoon=excluded.afternoon`,
		entry.CounselorID, entry.Date, boolPtrToInt(entry.Morning), boolPtrToInt(entry.Afternoon))
	return err
}

// ListByDate returns every counselor's mirror entry for one date.
// PRE: date is YYYY-MM-DD
// POST: Returns entries ordered by counselor id
func (s *SQLiteStore) ListByDate(ctx context.Context, date string) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT counselor_id, date, morning, afternoon FROM schedule_mirror WHERE date = ? ORDER BY counselor_id ASC",
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListMonth returns every mirror entry in a month across counselors.
// PRE: yearMonth is YYYY-MM
// POST: Returns entries ordered by date then counselor id
func (s *SQLiteStore) ListMonth(ctx context.Context, yearMonth string) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT counselor_id, date, morning, afternoon FROM schedule_mirror WHERE date LIKE ? ORDER BY date ASC, counselor_id ASC",
		yearMonth+"-%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// DeleteByCounselor removes every mirror row for a counselor. Used by
// cascade cleanup on counselor deletion.
// PRE: counselorID is non-empty
// POST: No mirror rows reference counselorID
func (s *SQLiteStore) DeleteByCounselor(ctx context.Context, counselorID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM schedule_mirror WHERE counselor_id = ?", counselorID)
	return err
}

// scanEntry extracts an Entry from a row scanner function.
func scanEntry(scan func(dest ...interface{}) error) (domain.Entry, error) {
	var entry domain.Entry
	var morning, afternoon sql.NullInt64
	if err := scan(&entry.CounselorID, &entry.Date, &morning, &afternoon); err != nil {
		return domain.Entry{}, err
	}
	entry.Morning = intToBoolPtr(morning)
	entry.Afternoon = intToBoolPtr(afternoon)
	return entry, nil
}

// scanEntries scans multiple rows into a slice of Entries.
func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolPtrToInt(b *bool) interface{} {
	if b == nil {
		return nil
	}
	if *b {
		return 1
	}
	return 0
}

func intToBoolPtr(n sql.NullInt64) *bool {
	if !n.Valid {
		return nil
	}
	v := n.Int64 != 0
	return &v
}
