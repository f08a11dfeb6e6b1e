// README: Pricing store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetRate(ctx context.Context, tripKind string) (Rate, error) {
	var r Rate
	err := s.db.QueryRow(ctx, `
		SELECT trip_kind, base_fare, per_km, currency
		FROM rates WHERE trip_kind = $1`, tripKind).
		Scan(&r.TripKind, &r.BaseFare, &r.PerKm, &r.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rate{}, ErrRateNotFound
	}
	if err != nil {
		return Rate{}, fmt.Errorf("get rate: %w", err)
	}
	return r, nil
}
