package order

import (
	"context"

	"greencart/internal/domain"
)

// Repository persists orders and applies the payment state transitions.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetProviderOrderID(ctx context.Context, id, providerOrderID string) error
	// ListPlaced returns orders that are cash-on-delivery or paid, newest first.
	// An empty userID lists every buyer's orders.
	ListPlaced(ctx context.Context, userID string) ([]domain.Order, error)
	// MarkPaid sets the paid flag of an unpaid order and empties the buyer's cart
	// in one transaction.
	MarkPaid(ctx context.Context, id, userID string) (*domain.Order, error)
	// DeleteUnpaid removes an order that has not been paid.
	DeleteUnpaid(ctx context.Context, id string) error
}
