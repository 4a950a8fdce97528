package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greencart/internal/domain"

	"github.com/samber/lo"
)

// ErrInvalidCart is returned for negative quantities or blank product ids.
var ErrInvalidCart = errors.New("invalid cart")

type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateCart(ctx context.Context, id string, items domain.CartItems) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// Get returns the buyer's current cart.
func (s *Service) Get(ctx context.Context, userID string) (domain.CartItems, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.CartItems == nil {
		return domain.CartItems{}, nil
	}
	return u.CartItems, nil
}

// Update replaces the buyer's cart. Zero quantities drop the entry.
func (s *Service) Update(ctx context.Context, userID string, items domain.CartItems) (domain.CartItems, error) {
	for id, qty := range items {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: product id required", ErrInvalidCart)
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: quantity for %s must not be negative", ErrInvalidCart, id)
		}
	}
	kept := domain.CartItems(lo.PickBy(items, func(_ string, qty int) bool { return qty > 0 }))

	if s.productRepo != nil {
		for id := range kept {
			if _, err := s.productRepo.GetByID(ctx, id); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("%w: product %s not found", ErrInvalidCart, id)
				}
				return nil, err
			}
		}
	}

	if err := s.repo.UpdateCart(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
