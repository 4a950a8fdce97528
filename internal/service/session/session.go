// Package session issues and validates opaque bearer tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"greencart/internal/domain"
	tokenrepo "greencart/internal/repository/token"
)

// ErrInvalidToken indicates the token is unknown, expired or of another kind.
var ErrInvalidToken = errors.New("invalid token")

// Session is the validated state behind a token.
type Session struct {
	UserID    string
	Kind      string
	ExpiresAt time.Time
}

type Manager struct {
	repo tokenrepo.Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewManager(repo tokenrepo.Repository, ttl time.Duration) *Manager {
	return &Manager{repo: repo, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue stores a fresh token of the given kind. userID may be empty for
// sessions without a buyer behind them.
func (m *Manager) Issue(ctx context.Context, kind, userID string) (string, error) {
	expiresAt := m.now().Add(m.ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		t := tokenrepo.Token{Token: token, Kind: kind, ExpiresAt: expiresAt}
		if userID != "" {
			uid := userID
			t.UserID = &uid
		}
		err = m.repo.Create(ctx, t)
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Validate resolves a token of the wanted kind. Expired tokens are removed.
func (m *Manager) Validate(ctx context.Context, kind, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidToken
	}
	meta, err := m.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Session{}, ErrInvalidToken
		}
		return Session{}, err
	}
	if meta.Kind != kind {
		return Session{}, ErrInvalidToken
	}
	if m.now().After(meta.ExpiresAt) {
		_ = m.repo.Delete(ctx, token)
		return Session{}, ErrInvalidToken
	}
	s := Session{Kind: meta.Kind, ExpiresAt: meta.ExpiresAt}
	if meta.UserID != nil {
		s.UserID = *meta.UserID
	}
	return s, nil
}

// Revoke deletes a token. Unknown tokens are not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.repo.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
