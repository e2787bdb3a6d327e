package storage

import (
	"database/sql"
	"fmt"
)

// migration is one numbered schema step. Migrations run in order inside
// a transaction and are recorded in schema_version.
type migration struct {
	version int
	apply   func(tx *sql.Tx) error
}

// migrations is the ordered chain. Append only; never edit a shipped step.
var migrations = []migration{
	{1, migrateBaseline},
}

// LatestSchemaVersion returns the highest migration version.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion reports the current schema version, 0 for an untracked
// database.
// PRE: db is a valid database connection
// POST: Returns the recorded version or 0 when schema_version is absent
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB brings the database up to the latest schema version.
// Re-running at the latest version is a no-op. dsn is logged context
// only; the connection is already open.
// PRE: db is a valid database connection
// POST: All pending migrations applied, WAL mode and foreign keys enabled
func MigrateDB(db *sql.DB, dsn string) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d (%s): %w", m.version, dsn, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`, m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
	}
	return nil
}

// migrateBaseline creates the full camp schema. IF NOT EXISTS keeps it
// safe on databases created before version tracking existed.
func migrateBaseline(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		auth_method TEXT NOT NULL DEFAULT 'password',
		password_hash TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		shirt_size TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		onboarding_complete INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS camper (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		birthdate TEXT NOT NULL,
		grade TEXT NOT NULL,
		allergies TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS guardian_link (
		id TEXT PRIMARY KEY,
		parent_id TEXT NOT NULL,
		camper_id TEXT NOT NULL,
		UNIQUE (parent_id, camper_id),
		FOREIGN KEY (parent_id) REFERENCES account(id),
		FOREIGN KEY (camper_id) REFERENCES camper(id)
	);

	CREATE TABLE IF NOT EXISTS emergency_contact (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		relationship TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL,
		FOREIGN KEY (owner_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS registration (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		role TEXT NOT NULL,
		camper_ids TEXT NOT NULL DEFAULT '[]',
		submitted_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS availability (
		id TEXT PRIMARY KEY,
		counselor_id TEXT NOT NULL,
		date TEXT NOT NULL,
		session TEXT NOT NULL CHECK (session IN ('morning', 'afternoon')),
		state TEXT NOT NULL CHECK (state IN ('available', 'unavailable')),
		UNIQUE (counselor_id, date, session),
		FOREIGN KEY (counselor_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS schedule_mirror (
		counselor_id TEXT NOT NULL,
		date TEXT NOT NULL,
		morning INTEGER,
		afternoon INTEGER,
		PRIMARY KEY (counselor_id, date)
	);

	CREATE TABLE IF NOT EXISTS assignment (
		date TEXT NOT NULL,
		session TEXT NOT NULL,
		counselor_id TEXT NOT NULL,
		camper_id TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (date, session, counselor_id, camper_id)
	);

	CREATE TABLE IF NOT EXISTS site_content (
		id TEXT PRIMARY KEY,
		hero_title TEXT NOT NULL,
		hero_subtitle TEXT NOT NULL DEFAULT '',
		program_blurb TEXT NOT NULL DEFAULT '',
		session_info TEXT NOT NULL DEFAULT '',
		morning_time TEXT NOT NULL DEFAULT '',
		afternoon_time TEXT NOT NULL DEFAULT '',
		price_full_day TEXT NOT NULL DEFAULT '',
		price_half_day TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		faq TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL,
		updated_by_email TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS audit_log (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		action TEXT NOT NULL,
		severity TEXT NOT NULL,
		actor_id TEXT NOT NULL DEFAULT '',
		actor_email TEXT NOT NULL DEFAULT '',
		actor_role TEXT NOT NULL DEFAULT '',
		resource_id TEXT NOT NULL DEFAULT '',
		resource_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_availability_counselor_date ON availability(counselor_id, date);
	CREATE INDEX IF NOT EXISTS idx_assignment_camper ON assignment(camper_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status);
	`
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create baseline schema: %w", err)
	}
	return nil
}
