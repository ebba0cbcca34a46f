package model

import "time"

type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusSuccessful TransactionStatus = "successful"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// Transaction records one payment confirmation attempt. Rows are written
// once with their final status and never transition afterwards.
type Transaction struct {
	ID          string
	UserID      *string // nil when the attempt failed before a user was resolved
	PaymentID   string  // gateway payment id, unique
	OrderID     string  // gateway order id, unique
	Signature   string
	AmountPaise int64
	Status      TransactionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AmountRupees is the two-place decimal value the gateway settles in.
func (t *Transaction) AmountRupees() float64 {
	return float64(t.AmountPaise) / 100
}
