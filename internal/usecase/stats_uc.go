package usecase

import (
	"context"

	"workgate/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	// Totals returns overall and paid user counts.
	Totals(ctx context.Context) (users int, paid int, err error)
	// Revenue returns successful payment sums (paise) for week/month/year.
	Revenue(ctx context.Context) (week, month, year int64, err error)
}

type statsUC struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
}

func NewStatsUseCase(users repository.UserRepository, transactions repository.TransactionRepository) *statsUC {
	return &statsUC{users: users, transactions: transactions}
}

func (u *statsUC) Totals(ctx context.Context) (int, int, error) {
	users, err := u.users.CountUsers(ctx, repository.NoTX)
	if err != nil {
		return 0, 0, err
	}
	paid, err := u.users.CountPaidUsers(ctx, repository.NoTX)
	if err != nil {
		return 0, 0, err
	}
	return users, paid, nil
}

func (u *statsUC) Revenue(ctx context.Context) (int64, int64, int64, error) {
	week, err := u.transactions.SumByPeriod(ctx, repository.NoTX, "week")
	if err != nil {
		return 0, 0, 0, err
	}
	month, err := u.transactions.SumByPeriod(ctx, repository.NoTX, "month")
	if err != nil {
		return 0, 0, 0, err
	}
	year, err := u.transactions.SumByPeriod(ctx, repository.NoTX, "year")
	if err != nil {
		return 0, 0, 0, err
	}
	return week, month, year, nil
}
