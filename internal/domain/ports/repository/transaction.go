package repository

import (
	"context"

	"workgate/internal/domain/model"
)

// -----------------------------
// Transactions
// -----------------------------

type TransactionRepository interface {
	// Save inserts exactly once; unique order/payment ids surface as
	// domain.ErrDuplicatePayment.
	Save(ctx context.Context, tx Tx, t *model.Transaction) error
	FindByOrderID(ctx context.Context, tx Tx, orderID string) (*model.Transaction, error)
	// SumByPeriod totals successful amounts (paise) since the start of
	// the given period: "week" | "month" | "year".
	SumByPeriod(ctx context.Context, tx Tx, period string) (int64, error)
}
