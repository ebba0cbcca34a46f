package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/domain/ports/adapter"
	"workgate/internal/domain/ports/repository"
	"workgate/internal/infra/logging"
	"workgate/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// ConfirmRequest is the validated confirmation payload. Handlers parse and
// validate exactly once before calling Confirm, so the failure-audit path
// below always has correlation fields to attach.
type ConfirmRequest struct {
	OrderID      string
	PaymentID    string
	Signature    string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         model.Role
	ReferralCode string
}

// HasCorrelation reports whether the payload carries at least one gateway
// identifier worth auditing. Payloads without any never reach the
// failed-transaction fallback.
func (r *ConfirmRequest) HasCorrelation() bool {
	return r.OrderID != "" || r.PaymentID != "" || r.Signature != ""
}

type CheckoutUseCase interface {
	// Confirm verifies the gateway signature and atomically provisions the
	// account: user upsert (paid=true) and successful transaction insert
	// commit together or not at all.
	Confirm(ctx context.Context, req *ConfirmRequest) (*model.User, error)
}

type checkoutUC struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
	gateway      adapter.PaymentGateway
	tm           repository.TransactionManager
	log          *zerolog.Logger
}

func NewCheckoutUseCase(
	users repository.UserRepository,
	transactions repository.TransactionRepository,
	gateway adapter.PaymentGateway,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *checkoutUC {
	return &checkoutUC{users: users, transactions: transactions, gateway: gateway, tm: tm, log: logger}
}

func (u *checkoutUC) Confirm(ctx context.Context, req *ConfirmRequest) (*model.User, error) {
	defer logging.TraceDuration(u.log, "CheckoutUC.Confirm")()

	if req == nil || req.Email == "" || !req.HasCorrelation() {
		return nil, domain.ErrInvalidArgument
	}
	ctx = logging.WithOrderID(ctx, req.OrderID)
	log := logging.With(ctx, u.log)

	// Trust boundary: nothing below runs on a forged payload.
	if err := u.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		log.Warn().Str("payment_id", req.PaymentID).Msg("signature verification failed")
		u.recordFailure(ctx, req)
		metrics.IncConfirmation(string(model.TransactionStatusFailed))
		return nil, domain.ErrSignatureInvalid
	}

	// Amount is re-derived server-side; the client never declares one.
	amount, err := model.PriceFor(req.Role)
	if err != nil {
		u.recordFailure(ctx, req)
		metrics.IncConfirmation(string(model.TransactionStatusFailed))
		return nil, err
	}

	var user *model.User
	txErr := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		existing, err := u.users.FindByEmail(ctx, tx, req.Email)
		switch {
		case err == nil:
			user = existing
		case errors.Is(err, domain.ErrNotFound):
			user, err = model.NewUser("", req.Email, req.Role)
			if err != nil {
				return err
			}
		default:
			return err
		}

		user.ApplyProfile(req.FirstName, req.LastName, req.Phone, req.Role, req.ReferralCode)
		user.Paid = true
		if err := u.users.Save(ctx, tx, user); err != nil {
			return err
		}

		now := time.Now()
		return u.transactions.Save(ctx, tx, &model.Transaction{
			ID:          uuid.NewString(),
			UserID:      &user.ID,
			PaymentID:   req.PaymentID,
			OrderID:     req.OrderID,
			Signature:   req.Signature,
			AmountPaise: amount,
			Status:      model.TransactionStatusSuccessful,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
	if txErr != nil {
		log.Error().Err(txErr).Msg("confirmation persistence failed")
		if !errors.Is(txErr, domain.ErrDuplicatePayment) {
			// A replayed callback already holds its audit row; anything else gets one.
			u.recordFailure(ctx, req)
		}
		metrics.IncConfirmation(string(model.TransactionStatusFailed))
		return nil, txErr
	}

	metrics.IncConfirmation(string(model.TransactionStatusSuccessful))
	metrics.AddPaymentRevenue(model.Currency, amount)
	log.Info().Str("user_id", user.ID).Str("payment_id", req.PaymentID).Msg("payment confirmed")
	return user, nil
}

// recordFailure writes a best-effort failed transaction for auditability.
// It carries whatever correlation fields the payload had, binds no user,
// and never propagates its own errors.
func (u *checkoutUC) recordFailure(ctx context.Context, req *ConfirmRequest) {
	amount := int64(0)
	if fee, err := model.PriceFor(req.Role); err == nil {
		amount = fee
	}
	now := time.Now()
	t := &model.Transaction{
		ID:          uuid.NewString(),
		PaymentID:   req.PaymentID,
		OrderID:     req.OrderID,
		Signature:   req.Signature,
		AmountPaise: amount,
		Status:      model.TransactionStatusFailed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.transactions.Save(ctx, repository.NoTX, t); err != nil {
		logging.With(ctx, u.log).Warn().Err(err).Msg("failed-transaction audit insert dropped")
	}
}
