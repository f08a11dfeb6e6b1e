// README: Match store backed by PostgreSQL.
package match

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"antar/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const matchColumns = `
	id, trip_id, matched_trip_id,
	match_score, route_overlap_percentage, distance_overlap_km,
	status, created_at, updated_at`

func (s *Store) Insert(ctx context.Context, m *Match) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO matches (
			id, trip_id, matched_trip_id,
			match_score, route_overlap_percentage, distance_overlap_km,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(m.ID), string(m.TripID), string(m.MatchedTripID),
		m.Score, m.OverlapPercent, m.OverlapDistance,
		string(m.Status), m.CreatedAt, m.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Match, error) {
	row := s.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, string(id))
	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByTrip returns every match referencing tripID on either side, in
// insertion order.
func (s *Store) ListByTrip(ctx context.Context, tripID types.ID) ([]*Match, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE trip_id = $1 OR matched_trip_id = $1
		ORDER BY created_at`, string(tripID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ExistsForPair reports whether the unordered pair (a,b) already has a match
// row, in either storage order.
func (s *Store) ExistsForPair(ctx context.Context, a, b types.ID) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE (trip_id = $1 AND matched_trip_id = $2)
			   OR (trip_id = $2 AND matched_trip_id = $1)
		)`, string(a), string(b))
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// HasAcceptedExcluding reports whether tripID participates in any accepted
// match other than excludeMatchID.
func (s *Store) HasAcceptedExcluding(ctx context.Context, tripID, excludeMatchID types.ID) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE (trip_id = $1 OR matched_trip_id = $1)
			  AND status = 'accepted'
			  AND id <> $2
		)`, string(tripID), string(excludeMatchID))
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE matches SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMatch(row pgx.Row) (*Match, error) {
	var m Match
	err := row.Scan(
		&m.ID, &m.TripID, &m.MatchedTripID,
		&m.Score, &m.OverlapPercent, &m.OverlapDistance,
		&m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
