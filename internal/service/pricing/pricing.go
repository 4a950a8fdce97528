// Package pricing computes what a buyer owes for a set of line items.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greencart/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidOrder is returned for an empty item list, a missing address or
	// buyer, a blank product reference or a non-positive quantity.
	ErrInvalidOrder = errors.New("invalid order data")
	// ErrCatalogLookup is returned when a line item references a product the
	// catalog does not have.
	ErrCatalogLookup = errors.New("product lookup failed")
)

// TaxRate is applied to the subtotal and truncated to whole currency units.
var TaxRate = decimal.RequireFromString("0.02")

// Catalog resolves the current offer price of a product.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Quote is the result of pricing a set of line items.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Amount   decimal.Decimal
}

type Calculator struct {
	catalog Catalog
}

func NewCalculator(catalog Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Validate checks the order input without touching the catalog.
func Validate(userID, addressID string, items []domain.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	if strings.TrimSpace(addressID) == "" {
		return fmt.Errorf("%w: address required", ErrInvalidOrder)
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: buyer required", ErrInvalidOrder)
	}
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return fmt.Errorf("%w: item %d has no product", ErrInvalidOrder, i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidOrder, i)
		}
	}
	return nil
}

// Compute looks up every line item's offer price, one lookup per item in
// order, and returns subtotal, tax and amount. Items must already be valid.
func (c *Calculator) Compute(ctx context.Context, items []domain.OrderItem) (Quote, error) {
	subtotal := decimal.Zero
	for _, it := range items {
		p, err := c.catalog.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return Quote{}, fmt.Errorf("%w: product %s: %w", ErrCatalogLookup, it.ProductID, err)
			}
			return Quote{}, fmt.Errorf("lookup product %s: %w", it.ProductID, err)
		}
		subtotal = subtotal.Add(p.OfferPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return Totals(subtotal), nil
}

// Totals derives tax and amount from a subtotal.
func Totals(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(TaxRate).Floor()
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Amount:   subtotal.Add(tax),
	}
}

// MinorUnits converts an amount to the smallest currency unit, rounding to
// the nearest integer.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
