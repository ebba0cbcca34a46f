package repository

import (
	"context"

	"workgate/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	// Save upserts by primary key. Inside a tx it participates in the
	// surrounding transaction; with nil tx it runs against the pool.
	Save(ctx context.Context, tx Tx, u *model.User) error
	// FindByEmail locks the row (FOR UPDATE) when called inside a tx so
	// concurrent confirmations for the same email serialize.
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	CountUsers(ctx context.Context, tx Tx) (int, error)
	CountPaidUsers(ctx context.Context, tx Tx) (int, error)
}
