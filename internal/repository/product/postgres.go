package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"greencart/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const selectColumns = `id::text, name, description, category, price::text, offer_price::text, image, in_stock, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + selectColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + selectColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Description == nil {
		p.Description = []string{}
	}
	if p.Image == nil {
		p.Image = []string{}
	}
	q := `
INSERT INTO products (name, description, category, price, offer_price, image, in_stock)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    offer_price = EXCLUDED.offer_price,
    image = EXCLUDED.image,
    in_stock = EXCLUDED.in_stock
RETURNING ` + selectColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Name, p.Description, p.Category, p.Price.String(), p.OfferPrice.String(), p.Image, p.InStock))
	if err != nil {
		r.logger.Printf("product repo: upsert name=%s error=%v", p.Name, err)
		return nil, err
	}
	return out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p          domain.Product
		price      string
		offerPrice string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &price, &offerPrice, &p.Image, &p.InStock, &p.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("product %s: price: %w", p.ID, err)
	}
	if p.OfferPrice, err = decimal.NewFromString(offerPrice); err != nil {
		return nil, fmt.Errorf("product %s: offer price: %w", p.ID, err)
	}
	return &p, nil
}
