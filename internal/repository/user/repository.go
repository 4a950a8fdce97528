package user

import (
	"context"

	"greencart/internal/domain"
)

// Repository persists and fetches buyers and their cart state.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateCart(ctx context.Context, id string, items domain.CartItems) error
}
