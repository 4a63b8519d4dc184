// Package session holds the process-wide credential state. It is created
// once at startup, passed explicitly to everything that needs it, written at
// login, and cleared at logout; nothing reads it through a package global.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
)

// Session is the logged-in state: the bearer token and the user's profile,
// both persisted to the mirror so a restart resumes the session.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.UserDetails
	store mirror.Store
}

// New builds an empty session backed by the given mirror store.
func New(store mirror.Store) *Session {
	return &Session{store: store}
}

// Restore loads a previously persisted session, if any. Absence is not an
// error; the console simply starts logged out.
func (s *Session) Restore(ctx context.Context) {
	var token string
	if err := s.store.Load(ctx, mirror.KeySessionToken, &token); err != nil {
		return
	}

	var user models.UserDetails
	if err := s.store.Load(ctx, mirror.KeySessionUser, &user); err != nil {
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
}

// Establish stores the credential issued at login and persists it.
func (s *Session) Establish(ctx context.Context, token string, user models.UserDetails) error {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	if err := s.store.Save(ctx, mirror.KeySessionToken, token); err != nil {
		return err
	}
	return s.store.Save(ctx, mirror.KeySessionUser, user)
}

// Clear tears the session down at logout.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, mirror.KeySessionToken); err != nil {
		return err
	}
	return s.store.Delete(ctx, mirror.KeySessionUser)
}

// Token implements gateway.TokenSource. Empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the logged-in profile, or nil when logged out.
func (s *Session) User() *models.UserDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Authenticated reports whether a credential is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Claims decodes the token's claims without verifying the signature. The
// console has no signing key; verification is the backend's job. This is
// display and pre-flight information only.
func (s *Session) Claims() (jwt.MapClaims, error) {
	token := s.Token()
	if token == "" {
		return nil, errors.New("no session token")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExpiresAt returns the token expiry, or zero time when the token is absent
// or carries no exp claim.
func (s *Session) ExpiresAt() time.Time {
	claims, err := s.Claims()
	if err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// Expired reports whether the token carries an exp claim in the past.
func (s *Session) Expired() bool {
	exp := s.ExpiresAt()
	return !exp.IsZero() && exp.Before(time.Now())
}
