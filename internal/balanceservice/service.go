// Package balanceservice manages business logic layer of point balances.
//
// Charge and Deduct run the same read-validate-write-record critical section
// under the user's registry lock; they differ only in the validation rule,
// the arithmetic direction and the ledger record kind.
package balanceservice

import (
	"context"
	"time"

	"github.com/go-petr/point-bank/internal/domain"
	"github.com/go-petr/point-bank/pkg/lockpkg"
	"github.com/rs/zerolog"
)

// BalanceRepo provides data access layer interface needed by balance service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type BalanceRepo interface {
	Get(ctx context.Context, userID int64) (domain.Balance, error)
	Upsert(ctx context.Context, userID, points int64) (domain.Balance, error)
}

// LedgerRepo provides the append side of the transaction ledger.
type LedgerRepo interface {
	Append(ctx context.Context, userID, amount int64, kind domain.TransactionKind, createdAt time.Time) (domain.Transaction, error)
}

// Service facilitates balance service layer logic.
type Service struct {
	balances   BalanceRepo
	ledger     LedgerRepo
	locks      *lockpkg.Registry
	maxBalance int64
}

// New returns balance service struct to manage balance business logic.
// maxBalance bounds every charge; amounts above it are rejected.
func New(maxBalance int64, br BalanceRepo, lr LedgerRepo) *Service {
	return &Service{
		balances:   br,
		ledger:     lr,
		locks:      lockpkg.NewRegistry(),
		maxBalance: maxBalance,
	}
}

// Get returns the user's balance. It takes no lock: the read is not part of a
// read-modify-write sequence and may observe a state before or after any
// concurrent mutation. Unknown users read as a zero balance.
func (s *Service) Get(ctx context.Context, userID int64) (domain.Balance, error) {
	return s.balances.Get(ctx, userID)
}

// Charge adds amount points to the user's balance. amount must be positive;
// the delivery layer enforces that before the service is reached. The charge
// is rejected with domain.OverflowError when it would push the balance above
// the configured maximum; the error carries how much could still be charged.
func (s *Service) Charge(ctx context.Context, userID, amount int64) (domain.Balance, error) {
	return s.mutate(ctx, userID, amount, mutation{
		kind: domain.KindCharge,
		validate: func(current int64) error {
			// Subtraction form: current+amount could overflow int64.
			if current > s.maxBalance-amount {
				return domain.OverflowError{Remaining: s.maxBalance - current}
			}
			return nil
		},
		apply: func(current int64) int64 { return current + amount },
	})
}

// Deduct spends amount points from the user's balance. amount must be
// positive. The deduct is rejected with domain.InsufficientPointsError when
// the balance is smaller than amount; the error carries the current balance.
func (s *Service) Deduct(ctx context.Context, userID, amount int64) (domain.Balance, error) {
	return s.mutate(ctx, userID, amount, mutation{
		kind: domain.KindDeduct,
		validate: func(current int64) error {
			if current < amount {
				return domain.InsufficientPointsError{Current: current}
			}
			return nil
		},
		apply: func(current int64) int64 { return current - amount },
	})
}

// mutation describes one direction of the shared critical section.
type mutation struct {
	kind     domain.TransactionKind
	validate func(current int64) error
	apply    func(current int64) int64
}

// mutate acquires the user's lock and runs read, validate, balance write and
// ledger append as one critical section. A validation failure aborts before
// any write; repo errors propagate unchanged. The lock is released on every
// path. ctx expiry aborts only the wait for the lock, never a section already
// underway.
func (s *Service) mutate(ctx context.Context, userID, amount int64, m mutation) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	lock := s.locks.Get(userID)
	if err := lock.Lock(ctx); err != nil {
		return domain.Balance{}, err
	}
	defer lock.Unlock()

	current, err := s.balances.Get(ctx, userID)
	if err != nil {
		return domain.Balance{}, err
	}

	if err := m.validate(current.Points); err != nil {
		l.Info().Err(err).Int64("user_id", userID).Send()
		return domain.Balance{}, err
	}

	updated, err := s.balances.Upsert(ctx, userID, m.apply(current.Points))
	if err != nil {
		return domain.Balance{}, err
	}

	if _, err := s.ledger.Append(ctx, userID, amount, m.kind, time.Now().UTC()); err != nil {
		return domain.Balance{}, err
	}

	return updated, nil
}
