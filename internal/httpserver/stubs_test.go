package httpserver

import (
	"context"
	"io"
	"log"

	"greencart/internal/domain"
	ordersvc "greencart/internal/service/order"
	"greencart/internal/service/session"
	usersvc "greencart/internal/service/user"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubUserService struct {
	user      *domain.User
	token     string
	err       error
	loggedOut string
}

func (s *stubUserService) Register(_ context.Context, _ usersvc.RegisterInput) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserService) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubUserService) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return nil
}

func (s *stubUserService) LookupByToken(_ context.Context, token string) (*domain.User, error) {
	if s.user == nil || token != s.token {
		return nil, session.ErrInvalidToken
	}
	return s.user, nil
}

type stubSellerService struct {
	token string
	err   error
}

func (s *stubSellerService) Login(_ context.Context, _, _ string) (string, error) {
	return s.token, s.err
}

func (s *stubSellerService) Logout(_ context.Context, _ string) error { return nil }

func (s *stubSellerService) Authenticate(_ context.Context, token string) error {
	if s.token == "" || token != s.token {
		return session.ErrInvalidToken
	}
	return nil
}

type stubProductService struct {
	products []domain.Product
	inStock  bool
}

func (s *stubProductService) List(_ context.Context, inStockOnly bool) ([]domain.Product, error) {
	s.inStock = inStockOnly
	return s.products, nil
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubCartService struct {
	items  domain.CartItems
	err    error
	userID string
}

func (s *stubCartService) Get(_ context.Context, userID string) (domain.CartItems, error) {
	s.userID = userID
	return s.items, s.err
}

func (s *stubCartService) Update(_ context.Context, userID string, items domain.CartItems) (domain.CartItems, error) {
	s.userID = userID
	s.items = items
	return items, s.err
}

type stubOrderService struct {
	order     *domain.Order
	placement *ordersvc.OnlinePlacement
	orders    []domain.Order
	err       error

	lastPlace  ordersvc.PlaceInput
	lastVerify ordersvc.VerifyInput
	listedAll  bool
}

func (s *stubOrderService) PlaceCOD(_ context.Context, in ordersvc.PlaceInput) (*domain.Order, error) {
	s.lastPlace = in
	return s.order, s.err
}

func (s *stubOrderService) PlaceOnline(_ context.Context, in ordersvc.PlaceInput) (*ordersvc.OnlinePlacement, error) {
	s.lastPlace = in
	return s.placement, s.err
}

func (s *stubOrderService) VerifyPayment(_ context.Context, in ordersvc.VerifyInput) (*domain.Order, error) {
	s.lastVerify = in
	return s.order, s.err
}

func (s *stubOrderService) ListForUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) ListAll(_ context.Context) ([]domain.Order, error) {
	s.listedAll = true
	return s.orders, s.err
}

func testDeps() Deps {
	return Deps{
		UserSvc:    &stubUserService{user: &domain.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}, token: "user-token"},
		SellerSvc:  &stubSellerService{token: "seller-token"},
		ProductSvc: &stubProductService{},
		CartSvc:    &stubCartService{},
		OrderSvc:   &stubOrderService{},
	}
}
