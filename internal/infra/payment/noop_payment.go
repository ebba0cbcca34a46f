package payment

import (
	"context"
	"fmt"
	"sync"

	"workgate/internal/domain"
	"workgate/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopPaymentGateway)(nil)

// NoopPaymentGateway is a simple in-memory gateway for dev mode and tests.
// Any signature equal to "ok" verifies.
type NoopPaymentGateway struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]int64 // order id -> amount (paise)
}

func NewNoopPaymentGateway() *NoopPaymentGateway {
	return &NoopPaymentGateway{
		orders: make(map[string]int64),
	}
}

func (g *NoopPaymentGateway) Name() string { return "noop" }

func (g *NoopPaymentGateway) next() string {
	g.seq++
	return fmt.Sprintf("order_noop%d", g.seq)
}

func (g *NoopPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	orderID := g.next()
	g.orders[orderID] = amountPaise
	return orderID, nil
}

func (g *NoopPaymentGateway) VerifySignature(orderID, paymentID, signature string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.orders[orderID]; !ok {
		return fmt.Errorf("noop: order not found: %s", orderID)
	}
	if paymentID == "" || signature != "ok" {
		return domain.ErrSignatureInvalid
	}
	return nil
}
