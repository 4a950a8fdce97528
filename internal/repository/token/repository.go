package token

import (
	"context"
	"time"
)

const (
	KindUser   = "user"
	KindSeller = "seller"
)

type Token struct {
	Token     string
	UserID    *string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
