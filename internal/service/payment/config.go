package payment

import (
	"errors"
	"strings"

	"golang.org/x/text/currency"
)

// Config carries the gateway credentials. It is built from the process
// configuration once and injected, never read from globals.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Currency  string
}

// Validate normalizes the currency code and rejects unusable settings.
func (c *Config) Validate() error {
	if c.KeySecret == "" {
		return errors.New("payment key secret required")
	}
	if c.BaseURL == "" {
		return errors.New("payment base url required")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	unit, err := currency.ParseISO(strings.TrimSpace(c.Currency))
	if err != nil {
		return errors.New("invalid payment currency " + c.Currency)
	}
	c.Currency = unit.String()
	return nil
}
