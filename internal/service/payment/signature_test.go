package payment

import (
	"errors"
	"strings"
	"testing"
)

func TestSignature_KnownVector(t *testing.T) {
	got := Signature("s3cr3t", "order_abc", "pay_123")
	// openssl: printf 'order_abc|pay_123' | openssl dgst -sha256 -hmac s3cr3t
	const want = "070ea2f5813be979e4d4dd50f9840717bb01adf600c92662f401086c6cabbf9a"
	if got != want {
		t.Fatalf("signature = %s, want %s", got, want)
	}
	if len(got) != 64 || strings.ToLower(got) != got {
		t.Fatalf("expected 64 lowercase hex chars, got %q", got)
	}
	if got != Signature("s3cr3t", "order_abc", "pay_123") {
		t.Fatalf("signature not deterministic")
	}
	if got == Signature("s3cr3t", "order_abc", "pay_124") {
		t.Fatalf("signature ignores payment id")
	}
	if got == Signature("other", "order_abc", "pay_123") {
		t.Fatalf("signature ignores secret")
	}
}

func TestVerify(t *testing.T) {
	v := NewVerifier("s3cr3t")
	good := "070ea2f5813be979e4d4dd50f9840717bb01adf600c92662f401086c6cabbf9a"

	if err := v.Verify("order_abc", "pay_123", good); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	for _, sig := range []string{"", "deadbeef", strings.ToUpper(good), good[:63] + "0"} {
		if err := v.Verify("order_abc", "pay_123", sig); !errors.Is(err, ErrSignatureMismatch) {
			t.Fatalf("signature %q: expected mismatch, got %v", sig, err)
		}
	}
	// Moving characters across the separator changes the signed message.
	if err := v.Verify("order_ab", "c|pay_123", good); err == nil {
		t.Fatalf("expected mismatch for shifted separator")
	}
}
