package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"greencart/internal/domain"
	"greencart/internal/metrics"
	orderrepo "greencart/internal/repository/order"
	"greencart/internal/service/payment"
	"greencart/internal/service/pricing"
)

var (
	// ErrOrderNotFound is returned when the internal order id is unknown.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyPaid is returned when verification targets a paid order.
	ErrOrderAlreadyPaid = errors.New("order already paid")

	errUserRequired = errors.New("user id required")
)

// Gateway registers payment intents with the payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, receipt string) (payment.Intent, error)
	KeyID() string
}

// SignatureVerifier checks a provider callback signature.
type SignatureVerifier interface {
	Verify(providerOrderID, providerPaymentID, signature string) error
}

// Service places orders and finalizes online payments.
type Service struct {
	repo     orderrepo.Repository
	calc     *pricing.Calculator
	gateway  Gateway
	verifier SignatureVerifier
	metrics  *metrics.Registry
	logger   *log.Logger
}

// New wires the order service. metrics and logger may be nil.
func New(repo orderrepo.Repository, catalog pricing.Catalog, gateway Gateway, verifier SignatureVerifier, m *metrics.Registry, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:     repo,
		calc:     pricing.NewCalculator(catalog),
		gateway:  gateway,
		verifier: verifier,
		metrics:  m,
		logger:   logger,
	}
}

// PlaceInput is what a buyer submits at checkout.
type PlaceInput struct {
	UserID    string             `json:"-"`
	AddressID string             `json:"address"`
	Items     []domain.OrderItem `json:"items"`
}

// OnlinePlacement is returned to the client so it can open the checkout widget.
type OnlinePlacement struct {
	OrderID string         `json:"orderId"`
	Intent  payment.Intent `json:"razorpayOrder"`
	KeyID   string         `json:"keyId"`
}

// VerifyInput is the provider callback relayed by the client.
type VerifyInput struct {
	ProviderOrderID   string `json:"razorpay_order_id"`
	ProviderPaymentID string `json:"razorpay_payment_id"`
	Signature         string `json:"razorpay_signature"`
	OrderID           string `json:"orderId"`
	UserID            string `json:"-"`
}

// PlaceCOD prices and persists a cash-on-delivery order, which counts as paid.
func (s *Service) PlaceCOD(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	return s.place(ctx, in, domain.PaymentCOD)
}

// PlaceOnline persists an unpaid order and registers a payment intent for its
// amount. If the intent cannot be created the pending order is removed.
func (s *Service) PlaceOnline(ctx context.Context, in PlaceInput) (*OnlinePlacement, error) {
	o, err := s.place(ctx, in, domain.PaymentOnline)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	intent, err := s.gateway.CreateIntent(ctx, pricing.MinorUnits(o.Amount), o.ID)
	if s.metrics != nil {
		s.metrics.IntentLatencySec.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if delErr := s.repo.DeleteUnpaid(context.WithoutCancel(ctx), o.ID); delErr != nil {
			s.logger.Printf("drop pending order %s: %v", o.ID, delErr)
		}
		if !errors.Is(err, payment.ErrProviderIntent) {
			err = fmt.Errorf("%w: %w", payment.ErrProviderIntent, err)
		}
		return nil, err
	}

	// The provider id is informational; verification does not depend on it.
	if err := s.repo.SetProviderOrderID(ctx, o.ID, intent.ID); err != nil {
		s.logger.Printf("store provider order id for %s: %v", o.ID, err)
	}
	return &OnlinePlacement{OrderID: o.ID, Intent: intent, KeyID: s.gateway.KeyID()}, nil
}

func (s *Service) place(ctx context.Context, in PlaceInput, pt domain.PaymentType) (*domain.Order, error) {
	if err := pricing.Validate(in.UserID, in.AddressID, in.Items); err != nil {
		return nil, err
	}
	quote, err := s.calc.Compute(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.Create(ctx, domain.Order{
		UserID:      in.UserID,
		Items:       in.Items,
		Amount:      quote.Amount,
		AddressID:   in.AddressID,
		PaymentType: pt,
		IsPaid:      pt == domain.PaymentCOD,
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OrdersPlaced.WithLabelValues(string(pt)).Inc()
		s.metrics.OrderAmount.WithLabelValues(string(pt)).Add(quote.Amount.InexactFloat64())
	}
	return o, nil
}

// VerifyPayment checks the provider signature. A match marks the order paid
// and empties the buyer's cart; a mismatch deletes the unpaid order and
// returns payment.ErrSignatureMismatch. Paid orders are never touched.
func (s *Service) VerifyPayment(ctx context.Context, in VerifyInput) (*domain.Order, error) {
	if in.OrderID == "" {
		return nil, ErrOrderNotFound
	}

	if sigErr := s.verifier.Verify(in.ProviderOrderID, in.ProviderPaymentID, in.Signature); sigErr != nil {
		s.count("rejected")
		if err := s.repo.DeleteUnpaid(ctx, in.OrderID); err != nil {
			return nil, mapStateErr(err)
		}
		s.logger.Printf("order %s dropped: signature mismatch", in.OrderID)
		return nil, sigErr
	}

	o, err := s.repo.MarkPaid(ctx, in.OrderID, in.UserID)
	if err != nil {
		s.count("failed")
		return nil, mapStateErr(err)
	}
	s.count("verified")
	return o, nil
}

// ListForUser returns the buyer's placed orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, errUserRequired
	}
	return s.repo.ListPlaced(ctx, userID)
}

// ListAll returns every placed order for the seller.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListPlaced(ctx, "")
}

func (s *Service) count(result string) {
	if s.metrics != nil {
		s.metrics.PaymentVerifications.WithLabelValues(result).Inc()
	}
}

func mapStateErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrOrderNotFound
	case errors.Is(err, domain.ErrAlreadyPaid):
		return ErrOrderAlreadyPaid
	default:
		return err
	}
}
