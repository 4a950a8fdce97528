package seller

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	tokenrepo "greencart/internal/repository/token"
	"greencart/internal/service/session"
)

// ErrInvalidCredentials is returned when the seller login does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates the single configured seller.
type Service struct {
	email    string
	password string
	sessions *session.Manager
}

func New(email, password string, sessions *session.Manager) *Service {
	return &Service{
		email:    strings.ToLower(strings.TrimSpace(email)),
		password: password,
		sessions: sessions,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if s.email == "" || s.password == "" {
		return "", ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(s.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return s.sessions.Issue(ctx, tokenrepo.KindSeller, "")
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Authenticate reports whether token is a live seller session.
func (s *Service) Authenticate(ctx context.Context, token string) error {
	_, err := s.sessions.Validate(ctx, tokenrepo.KindSeller, token)
	return err
}
