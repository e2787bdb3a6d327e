package registration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/registration"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new RegistrationStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, account_id, role, camper_ids, submitted_at FROM registration WHERE id = ?", id)
	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// Save appends a Registration. Inserting an existing id fails rather
// than updating; registrations are immutable.
// PRE: value has been validated and its id is new
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, value domain.Registration) error {
	if err := value.Validate(); err != nil {
		return fmt.Errorf("invalid registration: %w", err)
	}
	camperIDs, err := json.Marshal(value.CamperIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO registration (id, account_id, role, camper_ids, submitted_at) VALUES (?, ?, ?, ?, ?)",
		value.ID, value.AccountID, value.Role, string(camperIDs), value.SubmittedAt.Format(dateLayout))
	return err
}

// ListByAccount returns the registrations submitted by one account.
// PRE: accountID is non-empty
// POST: Returns registrations newest first
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, account_id, role, camper_ids, submitted_at FROM registration WHERE account_id = ? ORDER BY submitted_at DESC",
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// List returns the most recent registrations.
// PRE: limit > 0
// POST: Returns registrations newest first
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, account_id, role, camper_ids, submitted_at FROM registration ORDER BY submitted_at DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// scanRegistration extracts a Registration from a row scanner function.
func scanRegistration(scan func(dest ...interface{}) error) (domain.Registration, error) {
	var entity domain.Registration
	var camperIDs, submittedAt string
	if err := scan(&entity.ID, &entity.AccountID, &entity.Role, &camperIDs, &submittedAt); err != nil {
		return domain.Registration{}, err
	}
	if err := json.Unmarshal([]byte(camperIDs), &entity.CamperIDs); err != nil {
		return domain.Registration{}, fmt.Errorf("corrupt camper_ids for registration %s: %w", entity.ID, err)
	}
	entity.SubmittedAt, _ = time.Parse(dateLayout, submittedAt)
	return entity, nil
}

// scanRegistrations scans multiple rows into a slice of Registrations.
func scanRegistrations(rows *sql.Rows) ([]domain.Registration, error) {
	var results []domain.Registration
	for rows.Next() {
		r, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
