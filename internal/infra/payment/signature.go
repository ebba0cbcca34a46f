package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyCallbackSignature checks a checkout callback against the key secret.
// Per Razorpay documentation: signature = HMAC-SHA256(order_id + "|" + payment_id, secret)
// The comparison runs in constant time on the decoded bytes.
func VerifyCallbackSignature(secret, orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))

	return hmac.Equal(h.Sum(nil), provided)
}
