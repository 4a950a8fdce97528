package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"greencart/internal/domain"
	tokenrepo "greencart/internal/repository/token"
	userrepo "greencart/internal/repository/user"
	"greencart/internal/service/session"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput wraps registration validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Service handles buyer registration and login.
type Service struct {
	repo        userrepo.Repository
	sessions    *session.Manager
	passwordMin int
}

func New(repo userrepo.Repository, sessions *session.Manager) *Service {
	return &Service{
		repo:        repo,
		sessions:    sessions,
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a buyer and opens a session for them.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		CartItems:    domain.CartItems{},
	})
	if err != nil {
		return nil, "", err
	}
	token, err := s.sessions.Issue(ctx, tokenrepo.KindUser, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login validates credentials and returns the buyer plus a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.sessions.Issue(ctx, tokenrepo.KindUser, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout revokes the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// LookupByToken returns the buyer bound to a valid session token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	sess, err := s.sessions.Validate(ctx, tokenrepo.KindUser, token)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, session.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}
