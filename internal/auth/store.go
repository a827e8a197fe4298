package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Store is the credential store: users and session tokens behind a
// single serialized SQLite connection.
//
// Every operation, reads and writes alike, holds one process-wide
// exclusive lock for the duration of its query, so concurrent callers
// observe a total order. This is a deliberate simplicity-over-throughput
// tradeoff for a low-QPS administrative service: it eliminates
// read/write races around the token upsert and the seed check without
// any transaction choreography. Do not relax it to concurrent readers
// without re-verifying the one-row-per-(login,device) invariant under
// interleaving.
//
// The flip side: a slow query blocks every other store operation in the
// process. Every query here must stay an O(1) lookup by primary or
// unique key.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore creates a credential store over an open database handle.
// The handle is expected to be configured for a single connection
// (database.Open does this).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// lock acquires the store's exclusive lock and returns the release func,
// so call sites read as `defer s.lock()()`.
func (s *Store) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// VerifyCredentials checks a login/password pair and returns the
// account's role on success. ok is false for unknown logins and wrong
// passwords alike, so callers cannot enumerate registered logins.
//
// The password hash comparison runs after the store lock is released:
// Argon2id is intentionally slow, and holding the lock through it would
// stall every other store operation.
func (s *Store) VerifyCredentials(ctx context.Context, login, password string) (Role, bool, error) {
	var hash string
	var admin int

	unlock := s.lock()
	err := s.db.QueryRowContext(ctx,
		"SELECT password_hash, admin FROM users WHERE login = ?", login,
	).Scan(&hash, &admin)
	unlock()

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying user: %w", err)
	}

	match, err := VerifyPassword(password, hash)
	if err != nil {
		return "", false, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return "", false, nil
	}
	return roleFromFlag(admin != 0), true, nil
}

// UserExists reports whether an account with the given login exists.
func (s *Store) UserExists(ctx context.Context, login string) (bool, error) {
	defer s.lock()()

	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE login = ?", login,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking login: %w", err)
	}
	return true, nil
}

// CreateUser inserts a new account with an already-hashed password.
// Returns ErrLoginExists if the login is taken; the store is left
// unchanged in that case.
func (s *Store) CreateUser(ctx context.Context, login, passwordHash string, role Role) error {
	defer s.lock()()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (login, password_hash, admin) VALUES (?, ?, ?)",
		login, passwordHash, boolToInt(role.flag()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrLoginExists
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// ResolveRole resolves a role from a presented token and device id with
// a single joined lookup. Both the token string and the device id must
// match the same stored row; any mismatch, unknown token or valid token
// presented from a different device, yields ok=false with no hint of
// which check failed.
func (s *Store) ResolveRole(ctx context.Context, token, deviceID string) (Role, bool, error) {
	defer s.lock()()

	var admin int
	err := s.db.QueryRowContext(ctx,
		`SELECT users.admin FROM tokens
		 JOIN users ON users.login = tokens.login
		 WHERE tokens.token = ? AND tokens.device_id = ?`,
		token, deviceID,
	).Scan(&admin)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolving role: %w", err)
	}
	return roleFromFlag(admin != 0), true, nil
}

// UpsertToken records a token for a (login, device) pair. If the pair
// already has a row its token value is overwritten in place and the old
// token string stops resolving; otherwise a new row is inserted. The
// same login on a different device keeps its own independent row.
//
// The check-then-write is race-free because both statements run under
// the store's exclusive lock.
func (s *Store) UpsertToken(ctx context.Context, login, deviceID, token string) error {
	defer s.lock()()

	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT token FROM tokens WHERE login = ? AND device_id = ?",
		login, deviceID,
	).Scan(&existing)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO tokens (token, login, device_id) VALUES (?, ?, ?)",
			token, login, deviceID,
		); err != nil {
			return fmt.Errorf("inserting token: %w", err)
		}
	case err != nil:
		return fmt.Errorf("looking up token row: %w", err)
	default:
		if _, err := s.db.ExecContext(ctx,
			"UPDATE tokens SET token = ? WHERE login = ? AND device_id = ?",
			token, login, deviceID,
		); err != nil {
			return fmt.Errorf("updating token: %w", err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
