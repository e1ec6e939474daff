// Package ledgerrepo manages repository layer of ledger transactions.
package ledgerrepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/point-bank/internal/domain"
)

// RepoMem is an in-memory append-only ledger. Records get sequential ids and
// are returned in append order. Each call is atomic on its own with no
// cross-call guarantees.
type RepoMem struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64][]domain.Transaction
}

// NewRepoMem returns an empty in-memory ledger.
func NewRepoMem() *RepoMem {
	return &RepoMem{nextID: 1, records: make(map[int64][]domain.Transaction)}
}

// Append creates the transaction record and returns it with its assigned id.
func (r *RepoMem) Append(ctx context.Context, userID, amount int64, kind domain.TransactionKind, createdAt time.Time) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := domain.Transaction{
		ID:        r.nextID,
		UserID:    userID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: createdAt,
	}

	r.nextID++
	r.records[userID] = append(r.records[userID], tx)

	return tx, nil
}

// ListByUser returns all records for the given user in append order, or an
// empty slice when there are none.
func (r *RepoMem) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.records[userID]

	items := make([]domain.Transaction, len(stored))
	copy(items, stored)

	return items, nil
}
