//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
)

func TestTxManager_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	tm := NewTxManager(testPool)
	userRepo := NewUserRepo(testPool)

	t.Run("should commit when the callback succeeds", func(t *testing.T) {
		cleanup(t)

		err := tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			user, _ := model.NewUser("", "asha@example.com", model.RoleEmployer)
			return userRepo.Save(ctx, tx, user)
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}

		if _, err := userRepo.FindByEmail(ctx, nil, "asha@example.com"); err != nil {
			t.Fatalf("expected the committed user to be visible, got %v", err)
		}
	})

	t.Run("should roll back everything when the callback fails", func(t *testing.T) {
		cleanup(t)

		boom := errors.New("boom")
		err := tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			user, _ := model.NewUser("", "asha@example.com", model.RoleEmployer)
			if err := userRepo.Save(ctx, tx, user); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected the callback error, got %v", err)
		}

		if _, err := userRepo.FindByEmail(ctx, nil, "asha@example.com"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected the insert rolled back, got %v", err)
		}
	})
}
