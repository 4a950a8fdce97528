package product

import (
	"context"

	"greencart/internal/domain"
)

// Repository reads the product catalog and loads it from seeds and imports.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// Upsert inserts a product or updates the one with the same name.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
