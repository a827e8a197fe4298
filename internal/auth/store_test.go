package auth

import (
	"context"
	"errors"
	"testing"
)

func TestStore_VerifyCredentials(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	seedTestUser(t, store, "alice", "password123", RoleUser)

	role, ok, err := store.VerifyCredentials(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("VerifyCredentials() error = %v", err)
	}
	if !ok {
		t.Fatal("correct credentials should verify")
	}
	if role != RoleUser {
		t.Errorf("role = %q, want %q", role, RoleUser)
	}
}

func TestStore_VerifyCredentials_MismatchesIndistinguishable(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	seedTestUser(t, store, "alice", "password123", RoleUser)

	// Wrong password and unknown login must produce identical results:
	// no role, no match, no error.
	for _, tt := range []struct {
		name, login, password string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown login", "mallory", "password123"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			role, ok, err := store.VerifyCredentials(ctx, tt.login, tt.password)
			if err != nil {
				t.Fatalf("VerifyCredentials() error = %v", err)
			}
			if ok || role != "" {
				t.Errorf("VerifyCredentials() = (%q, %v), want empty mismatch", role, ok)
			}
		})
	}
}

func TestStore_CreateUser_Conflict(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	seedTestUser(t, store, "alice", "password123", RoleUser)

	hash, _ := HashPassword("other-password")
	err := store.CreateUser(ctx, "alice", hash, RoleAdmin)
	if !errors.Is(err, ErrLoginExists) {
		t.Fatalf("error = %v, want ErrLoginExists", err)
	}

	// The store must be unchanged: original password still works and the
	// account did not become an admin.
	role, ok, err := store.VerifyCredentials(ctx, "alice", "password123")
	if err != nil || !ok {
		t.Fatalf("VerifyCredentials() = (%v, %v), want success", ok, err)
	}
	if role != RoleUser {
		t.Errorf("role = %q, want %q (conflict must not alter the row)", role, RoleUser)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}
}

func TestStore_UserExists(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	exists, err := store.UserExists(ctx, "alice")
	if err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}
	if exists {
		t.Error("UserExists() = true for unknown login")
	}

	seedTestUser(t, store, "alice", "password123", RoleUser)

	exists, err = store.UserExists(ctx, "alice")
	if err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}
	if !exists {
		t.Error("UserExists() = false for existing login")
	}
}

func TestStore_UpsertToken_OneRowPerLoginDevice(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	seedTestUser(t, store, "alice", "password123", RoleAdmin)

	if err := store.UpsertToken(ctx, "alice", "d1", "token-one"); err != nil {
		t.Fatalf("UpsertToken() error = %v", err)
	}
	if err := store.UpsertToken(ctx, "alice", "d1", "token-two"); err != nil {
		t.Fatalf("UpsertToken() error = %v", err)
	}

	var count int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM tokens WHERE login = 'alice' AND device_id = 'd1'",
	).Scan(&count); err != nil {
		t.Fatalf("counting tokens: %v", err)
	}
	if count != 1 {
		t.Fatalf("token rows for (alice, d1) = %d, want 1", count)
	}

	// The superseded token must no longer resolve; the current one must.
	if _, ok, _ := store.ResolveRole(ctx, "token-one", "d1"); ok {
		t.Error("superseded token should not resolve")
	}
	if _, ok, _ := store.ResolveRole(ctx, "token-two", "d1"); !ok {
		t.Error("current token should resolve")
	}
}

func TestStore_UpsertToken_DevicesIndependent(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	seedTestUser(t, store, "alice", "password123", RoleUser)

	if err := store.UpsertToken(ctx, "alice", "d1", "token-d1"); err != nil {
		t.Fatalf("UpsertToken() error = %v", err)
	}
	if err := store.UpsertToken(ctx, "alice", "d2", "token-d2"); err != nil {
		t.Fatalf("UpsertToken() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tokens WHERE login = 'alice'").Scan(&count); err != nil {
		t.Fatalf("counting tokens: %v", err)
	}
	if count != 2 {
		t.Fatalf("token rows for alice = %d, want 2", count)
	}

	// Both devices' tokens resolve independently.
	if _, ok, _ := store.ResolveRole(ctx, "token-d1", "d1"); !ok {
		t.Error("d1 token should resolve on d1")
	}
	if _, ok, _ := store.ResolveRole(ctx, "token-d2", "d2"); !ok {
		t.Error("d2 token should resolve on d2")
	}
}

func TestStore_ResolveRole_DeviceBinding(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	seedTestUser(t, store, "alice", "password123", RoleAdmin)
	if err := store.UpsertToken(ctx, "alice", "d1", "token-d1"); err != nil {
		t.Fatalf("UpsertToken() error = %v", err)
	}

	role, ok, err := store.ResolveRole(ctx, "token-d1", "d1")
	if err != nil {
		t.Fatalf("ResolveRole() error = %v", err)
	}
	if !ok || role != RoleAdmin {
		t.Errorf("ResolveRole() = (%q, %v), want (admin, true)", role, ok)
	}

	// A valid token presented from the wrong device fails closed.
	_, ok, err = store.ResolveRole(ctx, "token-d1", "d2")
	if err != nil {
		t.Fatalf("ResolveRole() error = %v", err)
	}
	if ok {
		t.Error("token should not resolve with a different device_id")
	}

	// Unknown token fails identically.
	_, ok, err = store.ResolveRole(ctx, "no-such-token", "d1")
	if err != nil {
		t.Fatalf("ResolveRole() error = %v", err)
	}
	if ok {
		t.Error("unknown token should not resolve")
	}
}
