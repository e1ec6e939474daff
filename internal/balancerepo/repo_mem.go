// Package balancerepo manages repository layer of point balances.
package balancerepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/point-bank/internal/domain"
)

// RepoMem is an in-memory balance table. Each call is atomic on its own; it
// gives no cross-call guarantees, so read-modify-write callers must hold the
// entity lock themselves.
type RepoMem struct {
	mu       sync.Mutex
	balances map[int64]domain.Balance
}

// NewRepoMem returns an empty in-memory balance table.
func NewRepoMem() *RepoMem {
	return &RepoMem{balances: make(map[int64]domain.Balance)}
}

// Get returns the balance for the given user. Unknown users read as a zero
// balance, never as an error.
func (r *RepoMem) Get(ctx context.Context, userID int64) (domain.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[userID]
	if !ok {
		return domain.Balance{UserID: userID}, nil
	}

	return b, nil
}

// Upsert unconditionally sets the user's balance and returns the stored value.
func (r *RepoMem) Upsert(ctx context.Context, userID, points int64) (domain.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := domain.Balance{
		UserID:    userID,
		Points:    points,
		UpdatedAt: time.Now().UTC(),
	}
	r.balances[userID] = b

	return b, nil
}
