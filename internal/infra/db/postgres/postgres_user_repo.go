package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

// Save upserts on the email unique key. Two concurrent confirmations for the
// same new email therefore converge on a single row; RETURNING rebinds the
// in-memory id to whichever row won.
func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (
  id, email, first_name, last_name, phone, role, paid, referral_code, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),$9,$10
) ON CONFLICT (email) DO UPDATE SET
  first_name=$3, last_name=$4, phone=$5, role=$6, paid=$7,
  referral_code=COALESCE(NULLIF($8,''), users.referral_code),
  updated_at=$10
RETURNING id, created_at;`

	row, err := pickRow(ctx, r.pool, tx, q, u.ID, u.Email, u.FirstName, u.LastName, u.Phone, u.Role, u.Paid, u.ReferralCode, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	q := `
SELECT id, email, first_name, last_name, phone, role, paid, COALESCE(referral_code,''), created_at, updated_at
  FROM users WHERE email=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, email)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	const q = `
SELECT id, email, first_name, last_name, phone, role, paid, COALESCE(referral_code,''), created_at, updated_at
  FROM users WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanUser(row)
}

func (r *userRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM users;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *userRepo) CountPaidUsers(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM users WHERE paid;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.Paid, &u.ReferralCode, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &u, nil
}
