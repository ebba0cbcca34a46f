//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/usecase"
)

func TestOrderUseCase_Create(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("should use the server-side price for the role", func(t *testing.T) {
		// --- Arrange ---
		gateway := &MockPaymentGateway{}
		var requestedAmount int64
		var requestedCurrency string
		gateway.CreateOrderFunc = func(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
			requestedAmount = amountPaise
			requestedCurrency = currency
			return "order_emp1", nil
		}
		uc := usecase.NewOrderUseCase(gateway, testLogger)

		// --- Act ---
		order, err := uc.Create(ctx, model.RoleEmployer)

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if requestedAmount != 42900 {
			t.Errorf("expected gateway to be asked for 42900 paise, got %d", requestedAmount)
		}
		if requestedCurrency != "INR" {
			t.Errorf("expected currency INR, got %s", requestedCurrency)
		}
		if order.OrderID != "order_emp1" || order.Amount != 42900 || order.Currency != "INR" {
			t.Errorf("unexpected order handle: %+v", order)
		}
	})

	t.Run("should reject an unknown role without calling the gateway", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		uc := usecase.NewOrderUseCase(gateway, testLogger)

		_, err := uc.Create(ctx, model.Role("astronaut"))

		if !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole, got %v", err)
		}
		if gateway.CreateOrderCalls != 0 {
			t.Errorf("expected no remote call for an unknown role, got %d", gateway.CreateOrderCalls)
		}
	})

	t.Run("should surface gateway failures", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		gateway.CreateOrderFunc = func(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
			return "", domain.ErrGateway
		}
		uc := usecase.NewOrderUseCase(gateway, testLogger)

		_, err := uc.Create(ctx, model.RoleJobSeeker)

		if !errors.Is(err, domain.ErrGateway) {
			t.Fatalf("expected ErrGateway, got %v", err)
		}
	})

	t.Run("should issue distinct receipts under concurrent creates", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		var mu sync.Mutex
		receipts := make(map[string]int)
		gateway.CreateOrderFunc = func(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
			mu.Lock()
			receipts[receipt]++
			mu.Unlock()
			return "order_x", nil
		}
		uc := usecase.NewOrderUseCase(gateway, testLogger)

		const workers = 16
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					if _, err := uc.Create(ctx, model.RoleJobSeeker); err != nil {
						t.Errorf("concurrent create: %v", err)
						return
					}
				}
			}()
		}
		wg.Wait()

		if len(receipts) != workers*25 {
			t.Fatalf("expected %d distinct receipts, got %d", workers*25, len(receipts))
		}
		for r, n := range receipts {
			if r == "" || n != 1 {
				t.Fatalf("receipt %q was issued %d times", r, n)
			}
		}
	})

	t.Run("should issue a distinct receipt per order", func(t *testing.T) {
		gateway := &MockPaymentGateway{}
		var receipts []string
		gateway.CreateOrderFunc = func(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
			receipts = append(receipts, receipt)
			return "order_x", nil
		}
		uc := usecase.NewOrderUseCase(gateway, testLogger)

		for i := 0; i < 3; i++ {
			if _, err := uc.Create(ctx, model.RoleFreelancer); err != nil {
				t.Fatalf("create %d: %v", i, err)
			}
		}

		seen := map[string]bool{}
		for _, r := range receipts {
			if r == "" {
				t.Fatal("expected a non-empty receipt")
			}
			if seen[r] {
				t.Fatalf("receipt %q was reused", r)
			}
			seen[r] = true
		}
	})
}
