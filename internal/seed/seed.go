package seed

import (
	"context"
	"fmt"

	"greencart/internal/domain"
	productrepo "greencart/internal/repository/product"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type productSeed struct {
	Name        string
	Description []string
	Category    string
	Price       string
	OfferPrice  string
	Image       []string
}

var products = []productSeed{
	{
		Name:        "Potato 500g",
		Description: []string{"Fresh and organic", "Rich in carbohydrates"},
		Category:    "Vegetables",
		Price:       "25",
		OfferPrice:  "20",
		Image:       []string{"potato_image_1.png"},
	},
	{
		Name:        "Tomato 1 kg",
		Description: []string{"Juicy and ripe", "Rich in Vitamin C"},
		Category:    "Vegetables",
		Price:       "40",
		OfferPrice:  "35",
		Image:       []string{"tomato_image.png"},
	},
	{
		Name:        "Amul Milk 1L",
		Description: []string{"Pure and fresh", "Rich in calcium"},
		Category:    "Dairy",
		Price:       "60",
		OfferPrice:  "55",
		Image:       []string{"amul_milk_image.png"},
	},
	{
		Name:        "Basmati Rice 5kg",
		Description: []string{"Long grain and aromatic"},
		Category:    "Grains",
		Price:       "550",
		OfferPrice:  "520.50",
		Image:       []string{"basmati_rice_image.png"},
	},
}

// Writer stores catalog entries.
type Writer interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// Apply inserts the demo catalog. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	return Load(ctx, productrepo.NewPostgres(pool, nil))
}

// Load writes every seed product through w.
func Load(ctx context.Context, w Writer) (int, error) {
	for _, s := range products {
		p, err := s.toProduct()
		if err != nil {
			return 0, fmt.Errorf("product %s: %w", s.Name, err)
		}
		if _, err := w.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", s.Name, err)
		}
	}
	return len(products), nil
}

func (s productSeed) toProduct() (domain.Product, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}
	offer, err := decimal.NewFromString(s.OfferPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("offer price: %w", err)
	}
	return domain.Product{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Price:       price,
		OfferPrice:  offer,
		Image:       s.Image,
		InStock:     true,
	}, nil
}
