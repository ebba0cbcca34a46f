package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"workgate/internal/domain/model"
	"workgate/internal/domain/ports/adapter"
	"workgate/internal/infra/logging"
	"workgate/internal/infra/metrics"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

type OrderUseCase interface {
	// Create validates the role, resolves the fee server-side and registers
	// an order with the gateway. No local state is touched, so callers may
	// retry freely.
	Create(ctx context.Context, role model.Role) (*Order, error)
}

// Order is the handle the client needs to start the hosted payment flow.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type orderUC struct {
	gateway adapter.PaymentGateway
	log     *zerolog.Logger
	// Handlers call Create concurrently; MonotonicEntropy alone is not
	// goroutine safe, so it is wrapped in a locked reader.
	entropy *ulid.LockedMonotonicReader
}

func NewOrderUseCase(gateway adapter.PaymentGateway, logger *zerolog.Logger) *orderUC {
	return &orderUC{
		gateway: gateway,
		log:     logger,
		entropy: &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		},
	}
}

func (u *orderUC) Create(ctx context.Context, role model.Role) (*Order, error) {
	defer logging.TraceDuration(u.log, "OrderUC.Create")()

	amount, err := model.PriceFor(role)
	if err != nil {
		return nil, err
	}

	receipt := "rcpt_" + ulid.MustNew(ulid.Timestamp(time.Now()), u.entropy).String()
	orderID, err := u.gateway.CreateOrder(ctx, amount, model.Currency, receipt)
	if err != nil {
		u.log.Error().Err(err).Str("role", string(role)).Msg("gateway order creation failed")
		return nil, err
	}

	metrics.IncOrderCreated(string(role))
	u.log.Info().Str("order_id", orderID).Str("role", string(role)).Int64("amount", amount).Msg("order created")

	return &Order{OrderID: orderID, Amount: amount, Currency: model.Currency}, nil
}
