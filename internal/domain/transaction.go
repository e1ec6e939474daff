package domain

import "time"

// TransactionKind distinguishes the two balance mutations.
type TransactionKind string

const (
	// KindCharge marks a transaction that added points.
	KindCharge TransactionKind = "CHARGE"
	// KindDeduct marks a transaction that spent points.
	KindDeduct TransactionKind = "DEDUCT"
)

// Transaction holds one immutable ledger record for a user.
// Amount is always the positive magnitude of the operation; Kind carries the direction.
type Transaction struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Amount    int64           `json:"amount"`
	Kind      TransactionKind `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}
