package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fastbreak/internal/adapters/storage"
	domain "fastbreak/internal/domain/content"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ContentStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the singleton document.
// PRE: none
// POST: Returns the document or sql.ErrNoRows when never seeded
func (s *SQLiteStore) Get(ctx context.Context) (domain.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hero_title, hero_subtitle, program_blurb, session_info, morning_time, afternoon_time,
		        price_full_day, price_half_day, contact_email, contact_phone, faq, updated_at, updated_by_email
		 FROM site_content WHERE id = ?`, domain.DocumentID)

	var d domain.Document
	var faq, updatedAt string
	err := row.Scan(&d.ID, &d.HeroTitle, &d.HeroSubtitle, &d.ProgramBlurb, &d.SessionInfo,
		&d.MorningTime, &d.AfternoonTime, &d.PriceFullDay, &d.PriceHalfDay,
		&d.ContactEmail, &d.ContactPhone, &faq, &updatedAt, &d.UpdatedByEmail)
	if err == sql.ErrNoRows {
		return domain.Document{}, err
	}
	if err != nil {
		return domain.Document{}, err
	}
	if err := json.Unmarshal([]byte(faq), &d.FAQ); err != nil {
		return domain.Document{}, fmt.Errorf("corrupt faq column: %w", err)
	}
	d.UpdatedAt, _ = time.Parse(dateLayout, updatedAt)
	return d, nil
}

// Save upserts the singleton document.
// PRE: value has been validated
// POST: The document row matches value
func (s *SQLiteStore) Save(ctx context.Context, value domain.Document) error {
	if err := value.Validate(); err != nil {
		return fmt.Errorf("invalid content document: %w", err)
	}
	faq, err := json.Marshal(value.FAQ)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO site_content (id, hero_title, hero_subtitle, program_blurb, session_info, morning_time,
		   afternoon_time, price_full_day, price_half_day, contact_email, contact_phone, faq, updated_at, updated_by_email)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   hero_title=excluded.hero_title, hero_subtitle=excluded.hero_subtitle,
		   program_blurb=excluded.program_blurb, session_info=excluded.session_info,
		   morning_time=excluded.morning_time, afternoon_time=excluded.afternoon_time,
		   price_full_day=excluded.price_full_day, price_half_day=excluded.price_half_day,
		   contact_email=excluded.contact_email, contact_phone=excluded.contact_phone,
		   faq=excluded.faq, updated_at=excluded.updated_at, updated_by_email=excluded.updated_by_email`,
		domain.DocumentID, value.HeroTitle, value.HeroSubtitle, value.ProgramBlurb, value.SessionInfo,
		value.MorningTime, value.AfternoonTime, value.PriceFullDay, value.PriceHalfDay,
		value.ContactEmail, value.ContactPhone, string(faq),
		value.UpdatedAt.Format(dateLayout), value.UpdatedByEmail)
	return err
}
