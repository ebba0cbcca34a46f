package adapter

import "context"

// PaymentGateway is the hex port for the payment provider. The concrete
// client is constructed in main and injected; no package-level singleton.
type PaymentGateway interface {
	Name() string

	// CreateOrder registers a payment intent with the provider and returns
	// the provider-assigned order id. Amount is in the smallest currency
	// unit; capture is automatic.
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (orderID string, err error)

	// VerifySignature checks that a confirmation payload genuinely came
	// from the provider. This is the sole trust boundary of the checkout
	// flow; returns domain.ErrSignatureInvalid on mismatch.
	VerifySignature(orderID, paymentID, signature string) error
}
