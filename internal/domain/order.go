package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentCOD    PaymentType = "COD"
	PaymentOnline PaymentType = "Online"
)

var validPaymentTypes = map[PaymentType]struct{}{
	PaymentCOD:    {},
	PaymentOnline: {},
}

func ToPaymentType(s string) (PaymentType, error) {
	pt := PaymentType(s)
	if _, ok := validPaymentTypes[pt]; ok {
		return pt, nil
	}
	return "", errors.New("invalid payment type")
}

// OrderItem is immutable once the order is placed.
type OrderItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Amount          decimal.Decimal `json:"amount"`
	AddressID       string          `json:"address"`
	PaymentType     PaymentType     `json:"paymentType"`
	IsPaid          bool            `json:"isPaid"`
	ProviderOrderID string          `json:"providerOrderId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
