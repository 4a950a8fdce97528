package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrProviderIntent is returned when the gateway could not create an intent.
var ErrProviderIntent = errors.New("payment intent failed")

// errCallerGone marks calls abandoned by the caller's context.
var errCallerGone = errors.New("caller gone")

type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gateway status %d: %s", e.code, e.body)
}

// countsAsSuccess keeps abandoned requests and rejected input (4xx other
// than 429) from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, errCallerGone) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 400 && se.code < 500 && se.code != http.StatusTooManyRequests
	}
	return false
}

// Intent is the gateway-side order a client pays against.
type Intent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type intentRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// Client talks to a Razorpay-compatible orders API.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[Intent]
	logger  *log.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Client{cfg: cfg, http: httpClient, logger: logger}
	c.breaker = gobreaker.NewCircuitBreaker[Intent](gobreaker.Settings{
		Name:        "payment-intent",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("breaker %s: %s -> %s", name, from, to)
		},
	})
	return c
}

// KeyID is the public key a checkout widget is opened with.
func (c *Client) KeyID() string { return c.cfg.KeyID }

// Currency is the configured settlement currency.
func (c *Client) Currency() string { return c.cfg.Currency }

// CreateIntent registers a payment intent for amountMinor units with the
// internal order id as receipt.
func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, receipt string) (Intent, error) {
	intent, err := c.breaker.Execute(func() (Intent, error) {
		return c.createIntent(ctx, amountMinor, receipt)
	})
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %w", ErrProviderIntent, err)
	}
	return intent, nil
}

func (c *Client) createIntent(ctx context.Context, amountMinor int64, receipt string) (Intent, error) {
	body, err := json.Marshal(intentRequest{
		Amount:         amountMinor,
		Currency:       c.cfg.Currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return Intent{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Intent{}, fmt.Errorf("%w: %w", errCallerGone, err)
		}
		return Intent{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Intent{}, err
	}
	if resp.StatusCode/100 != 2 {
		return Intent{}, &statusError{code: resp.StatusCode, body: bytes.TrimSpace(raw)}
	}
	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return Intent{}, fmt.Errorf("decode intent: %w", err)
	}
	if intent.ID == "" {
		return Intent{}, errors.New("gateway returned no intent id")
	}
	return intent, nil
}
