package location

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"antar/internal/types"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Insert(ctx context.Context, u *Update) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO location_updates (id, user_id, lat, lng, accuracy_m, speed_kmh, heading_deg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.UserID, u.Position.Lat, u.Position.Lng,
		u.AccuracyM, u.SpeedKmh, u.HeadingDeg, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert location update: %w", err)
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID, limit int) ([]*Update, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, lat, lng, accuracy_m, speed_kmh, heading_deg, created_at
		FROM location_updates WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list location updates: %w", err)
	}
	defer rows.Close()

	var out []*Update
	for rows.Next() {
		var u Update
		if err := rows.Scan(&u.ID, &u.UserID, &u.Position.Lat, &u.Position.Lng,
			&u.AccuracyM, &u.SpeedKmh, &u.HeadingDeg, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location update: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
