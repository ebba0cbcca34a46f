//go:build !integration

package payment_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"workgate/internal/infra/payment"
)

func sign(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyCallbackSignature(t *testing.T) {
	const secret = "test_key_secret"

	t.Run("should accept a correctly signed callback", func(t *testing.T) {
		sig := sign(secret, "order_abc", "pay_abc")
		if !payment.VerifyCallbackSignature(secret, "order_abc", "pay_abc", sig) {
			t.Error("expected a valid signature to verify")
		}
	})

	t.Run("should accept an uppercase hex signature", func(t *testing.T) {
		sig := strings.ToUpper(sign(secret, "order_abc", "pay_abc"))
		if !payment.VerifyCallbackSignature(secret, "order_abc", "pay_abc", sig) {
			t.Error("expected hex decoding to ignore case")
		}
	})

	t.Run("should reject a signature that is not hex", func(t *testing.T) {
		if payment.VerifyCallbackSignature(secret, "order_abc", "pay_abc", "not-hex!") {
			t.Error("expected an undecodable signature to fail")
		}
	})

	t.Run("should reject a truncated signature", func(t *testing.T) {
		sig := sign(secret, "order_abc", "pay_abc")
		if payment.VerifyCallbackSignature(secret, "order_abc", "pay_abc", sig[:32]) {
			t.Error("expected a truncated signature to fail")
		}
	})

	t.Run("should reject a signature for different ids", func(t *testing.T) {
		sig := sign(secret, "order_abc", "pay_abc")
		if payment.VerifyCallbackSignature(secret, "order_abc", "pay_other", sig) {
			t.Error("expected a signature bound to other ids to fail")
		}
	})

	t.Run("should reject a signature made with another secret", func(t *testing.T) {
		sig := sign("wrong_secret", "order_abc", "pay_abc")
		if payment.VerifyCallbackSignature(secret, "order_abc", "pay_abc", sig) {
			t.Error("expected a foreign-key signature to fail")
		}
	})

	t.Run("should reject empty fields", func(t *testing.T) {
		sig := sign(secret, "order_abc", "pay_abc")
		if payment.VerifyCallbackSignature(secret, "", "pay_abc", sig) {
			t.Error("expected an empty order id to fail")
		}
		if payment.VerifyCallbackSignature(secret, "order_abc", "", sig) {
			t.Error("expected an empty payment id to fail")
		}
		if payment.VerifyCallbackSignature(secret, "order_abc", "pay_abc", "") {
			t.Error("expected an empty signature to fail")
		}
	})
}
