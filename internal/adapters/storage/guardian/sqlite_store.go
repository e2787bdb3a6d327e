package guardian

import (
	"context"
	"database/sql"
	"fmt"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/guardian"
)

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new GuardianStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a parent-camper link. Re-linking the same pair is a
// no-op.
// PRE: value has been validated
// POST: The link exists exactly once
func (s *SQLiteStore) Save(ctx context.Context, value domain.Link) error {
	if err := value.Validate(); err != nil {
		return fmt.Errorf("invalid guardian link: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guardian_link (id, parent_id, camper_id) VALUES (?, ?, ?)
		 ON CONFLICT(parent_id, camper_id) DO NOTHING`,
		value.ID, value.ParentID, value.CamperID)
	return err
}

// ListCamperIDsByParent returns the camper ids linked to a parent.
// PRE: parentID is non-empty
// POST: Returns ids in insertion order
func (s *SQLiteStore) ListCamperIDsByParent(ctx context.Context, parentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT camper_id FROM guardian_link WHERE parent_id = ? ORDER BY rowid ASC", parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// ListParentIDsByCamper returns the parent ids linked to a camper.
// PRE: camperID is non-empty
// POST: Returns ids in insertion order
func (s *SQLiteStore) ListParentIDsByCamper(ctx context.Context, camperID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT parent_id FROM guardian_link WHERE camper_id = ? ORDER BY rowid ASC", camperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// DeleteByParent removes every link owned by a parent. Used by cascade
// cleanup on parent deletion.
// PRE: parentID is non-empty
// POST: No links reference parentID
func (s *SQLiteStore) DeleteByParent(ctx context.Context, parentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM guardian_link WHERE parent_id = ?", parentID)
	return err
}

// DeleteByCamper removes every link pointing at a camper. Used by
// cascade cleanup on camper deletion.
// PRE: camperID is non-empty
// POST: No links reference camperID
func (s *SQLiteStore) DeleteByCamper(ctx context.Context, camperID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM guardian_link WHERE camper_id = ?", camperID)
	return err
}

// scanIDs scans a single-column id result set.
func scanIDs(rows *sql.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
