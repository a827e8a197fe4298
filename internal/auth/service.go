package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// Service wires the risk gate, credential store and token issuer into
// the operations the transport layer exposes. It is constructed
// explicitly and passed into handlers; there is no package-level
// singleton, so tests can inject a store over a scratch database.
type Service struct {
	store  *Store
	issuer *Issuer
	logger *slog.Logger
}

// NewService creates the auth service over a store.
func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		issuer: NewIssuer(store),
		logger: logger,
	}
}

// AuthenticateWithPassword performs a credential login. It returns a nil
// Session (with a nil error) when the request is rejected, whether by
// the risk gate or by a credential mismatch, and a non-nil error only on
// storage failure.
//
// The risk score is evaluated first, before any storage access: flagged
// clients never reach the database and never trigger a password
// comparison (or its timing signal).
func (s *Service) AuthenticateWithPassword(ctx context.Context, login, password string, fp Fingerprint) (*Session, error) {
	if score := Score(fp); score > RiskThreshold {
		s.logger.Warn("login rejected by risk gate",
			"device_id", fp.DeviceID,
			"score", score,
		)
		return nil, nil
	}

	role, ok, err := s.store.VerifyCredentials(ctx, login, password)
	if err != nil {
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}
	if !ok {
		return nil, nil
	}

	token, err := s.issuer.Issue(ctx, login, fp.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("login succeeded", "login", login, "role", role)
	return &Session{Token: token, Role: role}, nil
}

// Authorize resolves the caller's role from a presented token and
// fingerprint. ok is false for risk-rejected fingerprints, unknown
// tokens and valid tokens presented from the wrong device alike; the
// failure modes deliberately collapse so callers learn nothing about
// which check failed. A non-nil error means storage failure, nothing
// about the caller's standing.
func (s *Service) Authorize(ctx context.Context, token string, fp Fingerprint) (Role, bool, error) {
	if score := Score(fp); score > RiskThreshold {
		s.logger.Warn("authorization rejected by risk gate",
			"device_id", fp.DeviceID,
			"score", score,
		)
		return "", false, nil
	}

	role, ok, err := s.store.ResolveRole(ctx, token, fp.DeviceID)
	if err != nil {
		return "", false, fmt.Errorf("resolving role: %w", err)
	}
	return role, ok, nil
}

// RegisterUser creates a new account with the given role. The caller
// must independently have verified, via Authorize, that the requester
// holds the admin role. Returns ErrLoginExists if the login is taken.
func (s *Service) RegisterUser(ctx context.Context, login, password string, role Role) error {
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.store.CreateUser(ctx, login, hash, role); err != nil {
		return err
	}

	s.logger.Info("user registered", "login", login, "role", role)
	return nil
}
