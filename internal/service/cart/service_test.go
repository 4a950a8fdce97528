package cart

import (
	"context"
	"errors"
	"testing"

	"greencart/internal/domain"
)

type stubRepo struct {
	user       *domain.User
	getErr     error
	updateErr  error
	lastUserID string
	lastItems  domain.CartItems
	updates    int
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

func (s *stubRepo) UpdateCart(_ context.Context, id string, items domain.CartItems) error {
	s.updates++
	s.lastUserID = id
	s.lastItems = items
	return s.updateErr
}

type stubProductRepo struct {
	known map[string]bool
	err   error
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.known[id] {
		return nil, domain.ErrNotFound
	}
	return &domain.Product{ID: id}, nil
}

func TestUpdate_DropsZeroQuantities(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProductRepo{known: map[string]bool{"apple": true, "milk": true}})

	got, err := svc.Update(context.Background(), "u1", domain.CartItems{"apple": 2, "milk": 0})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got) != 1 || got["apple"] != 2 {
		t.Fatalf("unexpected cart %v", got)
	}
	if repo.lastUserID != "u1" || len(repo.lastItems) != 1 {
		t.Fatalf("repo got %s %v", repo.lastUserID, repo.lastItems)
	}
}

func TestUpdate_Rejects(t *testing.T) {
	cases := map[string]domain.CartItems{
		"negative":        {"apple": -1},
		"blank id":        {" ": 1},
		"unknown product": {"ghost": 1},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubRepo{}
			svc := New(repo, &stubProductRepo{known: map[string]bool{"apple": true}})
			if _, err := svc.Update(context.Background(), "u1", items); !errors.Is(err, ErrInvalidCart) {
				t.Fatalf("expected ErrInvalidCart, got %v", err)
			}
			if repo.updates != 0 {
				t.Fatalf("cart must not be written")
			}
		})
	}
}

func TestUpdate_EmptyCartClears(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)
	if _, err := svc.Update(context.Background(), "u1", nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updates != 1 || len(repo.lastItems) != 0 {
		t.Fatalf("expected an empty cart write, got %v", repo.lastItems)
	}
}

func TestGet(t *testing.T) {
	svc := New(&stubRepo{user: &domain.User{ID: "u1"}}, nil)
	items, err := svc.Get(context.Background(), "u1")
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil cart, got %v %v", items, err)
	}

	svc = New(&stubRepo{getErr: domain.ErrNotFound}, nil)
	if _, err := svc.Get(context.Background(), "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
