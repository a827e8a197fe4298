package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// EnsureAdmin idempotently creates the administrative account named in
// configuration. It runs at every process start, before the service
// accepts traffic: if the login already exists the call is a no-op, so
// restarts never duplicate or alter the row.
//
// The existence check is per-login rather than a user count, so seeding
// stays correct even after regular accounts have been registered.
func EnsureAdmin(ctx context.Context, store *Store, login, password string, logger *slog.Logger) error {
	exists, err := store.UserExists(ctx, login)
	if err != nil {
		return fmt.Errorf("checking admin account: %w", err)
	}
	if exists {
		logger.Debug("admin account present, skipping seed", "login", login)
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if err := store.CreateUser(ctx, login, hash, RoleAdmin); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	logger.Info("admin account seeded", "login", login)
	return nil
}
