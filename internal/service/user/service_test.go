package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"greencart/internal/domain"
	tokenrepo "greencart/internal/repository/token"
	"greencart/internal/service/session"
)

// memoryRepo is a lightweight in-memory user repository for tests.
type memoryRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
}

type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]tokenrepo.Token
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]domain.User)}
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := t
	return &clone, nil
}

func (r *memoryTokenRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memoryRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, domain.ErrAlreadyExists
	}
	clone := u
	if clone.ID == "" {
		clone.ID = "user-" + key
	}
	r.byEmail[key] = clone
	return &clone, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[strings.ToLower(email)]; ok {
		clone := u
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) UpdateCart(_ context.Context, id string, items domain.CartItems) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, u := range r.byEmail {
		if u.ID == id {
			u.CartItems = items
			r.byEmail[k] = u
			return nil
		}
	}
	return domain.ErrNotFound
}

func newTestService() *Service {
	return New(newMemoryRepo(), session.NewManager(newMemoryTokenRepo(), time.Hour))
}

func TestRegisterAndLogin_SucceedsWithTrimmedPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: " greens123 ",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if u.Email != "asha@example.com" || token == "" {
		t.Fatalf("unexpected user %+v token %q", u, token)
	}
	if u.PasswordHash == "greens123" {
		t.Fatalf("password stored in clear text")
	}

	_, loginToken, err := svc.Login(ctx, "ASHA@example.com", "greens123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginToken == token {
		t.Fatalf("expected a fresh token per login")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "a@b.co", Password: "longenough"},
		{Name: "A", Email: "not-an-email", Password: "longenough"},
		{Name: "A", Email: "a@b.co", Password: "short"},
	}
	for _, in := range cases {
		if _, _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "A@B.co", Password: "longenough"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected duplicate email to fail, got %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, pair := range [][2]string{{"a@b.co", "wrongpass"}, {"nobody@b.co", "longenough"}, {"", ""}} {
		if _, _, err := svc.Login(ctx, pair[0], pair[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login %v: expected ErrInvalidCredentials, got %v", pair, err)
		}
	}
}

func TestLookupByTokenAndLogout(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, token, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.co", Password: "longenough"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := svc.LookupByToken(ctx, token)
	if err != nil || got.ID != u.ID {
		t.Fatalf("lookup: %+v %v", got, err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.LookupByToken(ctx, token); !errors.Is(err, session.ErrInvalidToken) {
		t.Fatalf("expected invalid token after logout, got %v", err)
	}
	if _, err := svc.LookupByToken(ctx, ""); !errors.Is(err, session.ErrInvalidToken) {
		t.Fatalf("expected invalid token for empty token, got %v", err)
	}
}
