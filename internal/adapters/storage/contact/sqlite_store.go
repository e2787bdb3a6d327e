package contact

import (
	"context"
	"fmt"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/contact"
)

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ContactStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an emergency contact.
// PRE: value has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, value domain.Contact) error {
	if err := value.Validate(); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO emergency_contact (id, owner_id, name, relationship, phone) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, relationship=excluded.relationship, phone=excluded.phone`,
		value.ID, value.ParentID, value.Name, value.Relationship, value.Phone)
	return err
}

// ListByOwner returns the contacts registered by one account.
// PRE: ownerID is non-empty
// POST: Returns contacts ordered by name
func (s *SQLiteStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner_id, name, relationship, phone FROM emergency_contact WHERE owner_id = ? ORDER BY name ASC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Relationship, &c.Phone); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Delete removes one contact.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM emergency_contact WHERE id = ?", id)
	return err
}

// DeleteByOwner removes every contact owned by an account. Used by
// cascade cleanup on parent deletion.
// PRE: ownerID is non-empty
// POST: No contacts reference ownerID
func (s *SQLiteStore) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM emergency_contact WHERE owner_id = ?", ownerID)
	return err
}
