//go:build !integration

package usecase_test

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	return &l
}

// --- User repository ---

// MockUserRepo is a small in-memory implementation keyed by email, with
// per-method overrides for failure injection.
type MockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // by email

	SaveFunc        func(ctx context.Context, tx repository.Tx, u *model.User) error
	FindByEmailFunc func(ctx context.Context, tx repository.Tx, email string) (*model.User, error)
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: make(map[string]*model.User)}
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, tx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *MockUserRepo) CountPaidUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Paid {
			n++
		}
	}
	return n, nil
}

// --- Transaction repository ---

type MockTransactionRepo struct {
	mu           sync.Mutex
	transactions []*model.Transaction

	SaveFunc func(ctx context.Context, tx repository.Tx, t *model.Transaction) error
}

func NewMockTransactionRepo() *MockTransactionRepo {
	return &MockTransactionRepo{}
}

func (m *MockTransactionRepo) Save(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, t)
	}
	return m.SaveDefault(ctx, tx, t)
}

// SaveDefault is the built-in in-memory behavior. Overrides can delegate to
// it without recursing through SaveFunc.
func (m *MockTransactionRepo) SaveDefault(ctx context.Context, tx repository.Tx, t *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.transactions {
		if (t.PaymentID != "" && existing.PaymentID == t.PaymentID) ||
			(t.OrderID != "" && existing.OrderID == t.OrderID) {
			return domain.ErrDuplicatePayment
		}
	}
	cp := *t
	m.transactions = append(m.transactions, &cp)
	return nil
}

func (m *MockTransactionRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transactions {
		if t.OrderID == orderID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockTransactionRepo) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum int64
	for _, t := range m.transactions {
		if t.Status == model.TransactionStatusSuccessful {
			sum += t.AmountPaise
		}
	}
	return sum, nil
}

// All returns a snapshot of recorded transactions.
func (m *MockTransactionRepo) All() []*model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Transaction, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// --- Payment gateway ---

type MockPaymentGateway struct {
	CreateOrderFunc     func(ctx context.Context, amountPaise int64, currency, receipt string) (string, error)
	VerifySignatureFunc func(orderID, paymentID, signature string) error

	CreateOrderCalls int
}

func (m *MockPaymentGateway) Name() string { return "mock" }

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	m.CreateOrderCalls++
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountPaise, currency, receipt)
	}
	return "order_test123", nil
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) error {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(orderID, paymentID, signature)
	}
	return nil
}

// --- Transaction manager ---

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, nil)
}

// --- Session repository ---

type MockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*repository.Session

	PutFunc func(ctx context.Context, s *repository.Session, ttl time.Duration) error
}

func NewMockSessionRepo() *MockSessionRepo {
	return &MockSessionRepo{sessions: make(map[string]*repository.Session)}
}

func (m *MockSessionRepo) Put(ctx context.Context, s *repository.Session, ttl time.Duration) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, s, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *MockSessionRepo) Get(ctx context.Context, id string) (*repository.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockSessionRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
