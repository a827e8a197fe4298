package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the schema applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "hostwarden-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schemaSQL := `
		CREATE TABLE users (
			login TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			admin INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE tokens (
			token TEXT PRIMARY KEY,
			login TEXT NOT NULL,
			device_id TEXT NOT NULL,
			issued_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE UNIQUE INDEX idx_tokens_login_device ON tokens(login, device_id);
	`
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	return db
}

// seedTestUser inserts an account with the given role and password.
func seedTestUser(t *testing.T, store *Store, login, password string, role Role) {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := store.CreateUser(context.Background(), login, hash, role); err != nil {
		t.Fatalf("creating test user %s: %v", login, err)
	}
}

// cleanFingerprint returns an unflagged fingerprint for the given device.
func cleanFingerprint(deviceID string) Fingerprint {
	return Fingerprint{DeviceID: deviceID}
}
