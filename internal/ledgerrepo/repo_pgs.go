package ledgerrepo

import (
	"context"
	"time"

	"github.com/go-petr/point-bank/internal/domain"
	"github.com/go-petr/point-bank/pkg/dbpkg"
	"github.com/go-petr/point-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic backed by Postgres.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns ledger RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const appendQuery = `
INSERT INTO
    points_ledger (user_id, amount, kind, created_at)
VALUES
    ($1, $2, $3, $4)
RETURNING id, user_id, amount, kind, created_at
`

// Append creates the transaction record and returns it with its assigned id.
func (r *RepoPGS) Append(ctx context.Context, userID, amount int64, kind domain.TransactionKind, createdAt time.Time) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, appendQuery, userID, amount, kind, createdAt)

	var tx domain.Transaction

	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.Kind,
		&tx.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return tx, errorspkg.ErrInternal
	}

	return tx, nil
}

const listQuery = `
SELECT id, user_id, amount, kind, created_at FROM points_ledger
WHERE user_id = $1
ORDER BY id
`

// ListByUser returns all records for the given user in append order.
func (r *RepoPGS) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&tx.Kind,
			&tx.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, tx)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
