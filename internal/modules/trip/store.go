// README: Trip store backed by PostgreSQL.
package trip

import (
	"context"
	"database/sql"
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

const tripColumns = `
	id, user_id, trip_type, status,
	origin_lat, origin_lng, origin_address,
	dest_lat, dest_lng, dest_address,
	departure_date, departure_time,
	seats_available, price, distance_km,
	created_at, updated_at`

func (s *Store) Create(ctx context.Context, t *Trip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (
			id, user_id, trip_type, status,
			origin_lat, origin_lng, origin_address,
			dest_lat, dest_lng, dest_address,
			departure_date, departure_time,
			seats_available, price, distance_km,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			$11, $12,
			$13, $14, $15,
			$16, $17
		)`,
		string(t.ID), string(t.UserID), string(t.Type), string(t.Status),
		t.Origin.Lat, t.Origin.Lng, t.OriginAddress,
		t.Destination.Lat, t.Destination.Lng, t.DestinationAddress,
		t.DepartureDate, t.DepartureTime,
		t.SeatsAvailable, t.Price, t.DistanceKm,
		t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, string(id))
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+` FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

// ListCandidates returns structurally eligible counter-trips: opposite type,
// given status, same departure date, excluding the trip itself. An empty
// result is not an error.
func (s *Store) ListCandidates(ctx context.Context, tripType Type, status Status, departureDate string, excludeID types.ID) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+` FROM trips
		WHERE trip_type = $1
		  AND status = $2
		  AND departure_date = $3
		  AND id <> $4`,
		string(tripType), string(status), departureDate, string(excludeID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (s *Store) Update(ctx context.Context, t *Trip) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips
		SET status = $1, seats_available = $2, price = $3, updated_at = $4
		WHERE id = $5`,
		string(t.Status), t.SeatsAvailable, t.Price, t.UpdatedAt, string(t.ID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var seats sql.NullInt32
	err := row.Scan(
		&t.ID, &t.UserID, &t.Type, &t.Status,
		&t.Origin.Lat, &t.Origin.Lng, &t.OriginAddress,
		&t.Destination.Lat, &t.Destination.Lng, &t.DestinationAddress,
		&t.DepartureDate, &t.DepartureTime,
		&seats, &t.Price, &t.DistanceKm,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if seats.Valid {
		n := int(seats.Int32)
		t.SeatsAvailable = &n
	}
	return &t, nil
}

func collectTrips(rows pgx.Rows) ([]*Trip, error) {
	out := make([]*Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
