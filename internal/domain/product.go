package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description []string        `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	OfferPrice  decimal.Decimal `json:"offerPrice"`
	Image       []string        `json:"image"`
	InStock     bool            `json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
}
