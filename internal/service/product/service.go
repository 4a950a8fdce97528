package product

import (
	"context"

	"greencart/internal/domain"
	productrepo "greencart/internal/repository/product"

	"github.com/samber/lo"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog. With inStockOnly set, sold-out products are left out.
func (s *Service) List(ctx context.Context, inStockOnly bool) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if inStockOnly {
		products = lo.Filter(products, func(p domain.Product, _ int) bool { return p.InStock })
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}
