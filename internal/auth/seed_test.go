package auth

import (
	"context"
	"log/slog"
	"testing"
)

func TestEnsureAdmin_CreatesOnEmptyDB(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	if err := EnsureAdmin(ctx, store, "root", "secret-pw", slog.Default()); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	role, ok, err := store.VerifyCredentials(ctx, "root", "secret-pw")
	if err != nil {
		t.Fatalf("VerifyCredentials() error = %v", err)
	}
	if !ok {
		t.Fatal("seeded admin should authenticate with the configured password")
	}
	if role != RoleAdmin {
		t.Errorf("role = %q, want %q", role, RoleAdmin)
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	if err := EnsureAdmin(ctx, store, "root", "first-password", slog.Default()); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	// A restart with a different configured password must neither add a
	// row nor alter the existing one.
	if err := EnsureAdmin(ctx, store, "root", "second-password", slog.Default()); err != nil {
		t.Fatalf("EnsureAdmin() second call error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 1 {
		t.Errorf("user count = %d, want 1", count)
	}

	if _, ok, _ := store.VerifyCredentials(ctx, "root", "first-password"); !ok {
		t.Error("original password should still work after repeat seeding")
	}
	if _, ok, _ := store.VerifyCredentials(ctx, "root", "second-password"); ok {
		t.Error("repeat seeding must not change the stored password")
	}
}

func TestEnsureAdmin_SkipsWhenOtherUsersExist(t *testing.T) {
	store := NewStore(testDB(t))
	ctx := context.Background()

	// The existence check is per-login: unrelated accounts must not
	// suppress seeding.
	seedTestUser(t, store, "bob", "bob-password", RoleUser)

	if err := EnsureAdmin(ctx, store, "root", "secret-pw", slog.Default()); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	exists, err := store.UserExists(ctx, "root")
	if err != nil {
		t.Fatalf("UserExists() error = %v", err)
	}
	if !exists {
		t.Error("admin should be seeded even when other accounts exist")
	}
}
