package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrSignatureMismatch is returned when the gateway signature does not match.
var ErrSignatureMismatch = errors.New("invalid signature")

// Signature returns the lowercase hex HMAC-SHA256 of "<orderID>|<paymentID>".
func Signature(secret, providerOrderID, providerPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(providerOrderID + "|" + providerPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verifier checks signatures with a fixed secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify compares the supplied signature in constant time.
func (v *Verifier) Verify(providerOrderID, providerPaymentID, signature string) error {
	expected := Signature(string(v.secret), providerOrderID, providerPaymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}
