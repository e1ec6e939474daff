package balancerepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/point-bank/internal/domain"
	"github.com/go-petr/point-bank/pkg/dbpkg"
	"github.com/go-petr/point-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates balance repository layer logic backed by Postgres.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns balance RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const getQuery = `
SELECT user_id, points, updated_at FROM users_points
WHERE user_id = $1 LIMIT 1
`

// Get returns the balance for the given user. Unknown users read as a zero
// balance, never as an error.
func (r *RepoPGS) Get(ctx context.Context, userID int64) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, userID)

	var b domain.Balance

	err := row.Scan(
		&b.UserID,
		&b.Points,
		&b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return domain.Balance{UserID: userID}, nil
	}

	if err != nil {
		l.Error().Err(err).Send()
		return b, errorspkg.ErrInternal
	}

	return b, nil
}

const upsertQuery = `
INSERT INTO
    users_points (user_id, points)
VALUES
    ($1, $2)
ON CONFLICT (user_id) DO UPDATE
    SET points = EXCLUDED.points, updated_at = now()
RETURNING user_id, points, updated_at
`

// Upsert unconditionally sets the user's balance and returns the stored value.
func (r *RepoPGS) Upsert(ctx context.Context, userID, points int64) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, upsertQuery, userID, points)

	var b domain.Balance

	err := row.Scan(
		&b.UserID,
		&b.Points,
		&b.UpdatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return b, errorspkg.ErrInternal
	}

	return b, nil
}
