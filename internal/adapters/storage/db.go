package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS activation_token (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		purpose TEXT NOT NULL DEFAULT 'activation',
		expires_at TEXT NOT NULL,
		used INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS user_profile (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		photo_url TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS course (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL,
		price_cents INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		students INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS lesson (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		title TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS resource (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL DEFAULT 'link',
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS assignment (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_at TEXT,
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS enrollment (
		user_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		enrolled_at TEXT NOT NULL,
		PRIMARY KEY (user_id, course_id),
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS favorite (
		user_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		PRIMARY KEY (user_id, course_id),
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS course_progress (
		user_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		progress REAL NOT NULL DEFAULT 0,
		time_spent_minutes INTEGER NOT NULL DEFAULT 0,
		modules_completed INTEGER NOT NULL DEFAULT 0,
		last_accessed TEXT,
		completed INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, course_id),
		FOREIGN KEY (course_id) REFERENCES course(id)
	);

	CREATE TABLE IF NOT EXISTS progress_sample (
		user_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		day TEXT NOT NULL,
		progress REAL NOT NULL,
		PRIMARY KEY (user_id, course_id, day)
	);

	CREATE TABLE IF NOT EXISTS prefs (
		user_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, key)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
