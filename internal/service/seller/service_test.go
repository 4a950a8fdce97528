package seller

import (
	"context"
	"errors"
	"testing"
	"time"

	"greencart/internal/domain"
	tokenrepo "greencart/internal/repository/token"
	"greencart/internal/service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTokenRepo map[string]tokenrepo.Token

func (r memoryTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	if _, ok := r[token.Token]; ok {
		return domain.ErrAlreadyExists
	}
	r[token.Token] = token
	return nil
}

func (r memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r memoryTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r, token)
	return nil
}

func TestLoginAuthenticateLogout(t *testing.T) {
	tokens := memoryTokenRepo{}
	svc := New("Seller@GreenCart.dev", "hunter22", session.NewManager(tokens, time.Hour))
	ctx := context.Background()

	_, err := svc.Login(ctx, "seller@greencart.dev", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := svc.Login(ctx, " seller@greencart.dev ", "hunter22")
	require.NoError(t, err)
	require.NoError(t, svc.Authenticate(ctx, token))
	assert.Nil(t, tokens[token].UserID)

	require.NoError(t, svc.Logout(ctx, token))
	assert.True(t, errors.Is(svc.Authenticate(ctx, token), session.ErrInvalidToken))
}

func TestLogin_UnconfiguredSellerRejectsEverything(t *testing.T) {
	svc := New("", "", session.NewManager(memoryTokenRepo{}, time.Hour))
	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
