package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Issuer generates opaque session tokens and records them against the
// requesting (login, device) pair.
type Issuer struct {
	store *Store
}

// NewIssuer creates a token issuer backed by the given store.
func NewIssuer(store *Store) *Issuer {
	return &Issuer{store: store}
}

// Issue generates a fresh token for the pair and upserts it. Token
// values are random v4 UUIDs: 122 bits of entropy, infeasible to guess
// or enumerate. A re-login from a previously-seen device overwrites that
// device's row, implicitly invalidating its prior token; logins from
// different devices for the same account coexist independently.
func (i *Issuer) Issue(ctx context.Context, login, deviceID string) (string, error) {
	token := uuid.NewString()
	if err := i.store.UpsertToken(ctx, login, deviceID, token); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}
	return token, nil
}
