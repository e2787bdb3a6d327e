package camper

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/camper"
)

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CamperStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Camper by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Camper, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, birthdate, grade, allergies, notes FROM camper WHERE id = ?", id)
	var entity domain.Camper
	err := row.Scan(&entity.ID, &entity.Name, &entity.Birthdate, &entity.Grade, &entity.Allergies, &entity.Notes)
	if err == sql.ErrNoRows {
		return domain.Camper{}, fmt.Errorf("camper not found: %w", err)
	}
	return entity, err
}

// Save persists a Camper to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Camper) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO camper (id, name, birthdate, grade, allergies, notes) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, birthdate=excluded.birthdate,
		   grade=excluded.grade, allergies=excluded.allergies, notes=excluded.notes`,
		entity.ID, entity.Name, entity.Birthdate, entity.Grade, entity.Allergies, entity.Notes)
	return err
}

// Delete removes a Camper from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM camper WHERE id = ?", id)
	return err
}

// List retrieves all Campers ordered by name.
// PRE: none
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Camper, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, birthdate, grade, allergies, notes FROM camper ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCampers(rows)
}

// ListByIDs retrieves Campers for an explicit id set.
// PRE: ids may be empty (returns nil)
// POST: Returns matching entities; missing ids are skipped silently
func (s *SQLiteStore) ListByIDs(ctx context.Context, ids []string) ([]domain.Camper, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, birthdate, grade, allergies, notes FROM camper WHERE id IN ("+placeholders+") ORDER BY name ASC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCampers(rows)
}

// scanCampers scans multiple rows into a slice of Campers.
func scanCampers(rows *sql.Rows) ([]domain.Camper, error) {
	var results []domain.Camper
	for rows.Next() {
		var c domain.Camper
		if err := rows.Scan(&c.ID, &c.Name, &c.Birthdate, &c.Grade, &c.Allergies, &c.Notes); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
