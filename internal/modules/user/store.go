// README: Postgres-backed user store.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"antar/internal/types"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, phone_number, full_name, email, hashed_password, role, is_driver,
	avatar_url, rating, trips_completed, license_type, vehicle_model, vehicle_plate,
	current_lat, current_lng, location_updated_at, location_sharing_enabled, created_at`

func (s *Store) Create(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, phone_number, full_name, email, hashed_password, role, is_driver,
			avatar_url, rating, trips_completed, license_type, vehicle_model, vehicle_plate,
			location_sharing_enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		u.ID, u.PhoneNumber, u.FullName, u.Email, u.HashedPassword, u.Role, u.IsDriver,
		u.AvatarURL, u.Rating, u.TripsCompleted, u.LicenseType, u.VehicleModel, u.VehiclePlate,
		u.LocationSharingEnabled, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) GetByPhone(ctx context.Context, phone string) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phone)
	return scanUser(row)
}

func (s *Store) Update(ctx context.Context, u *User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET full_name = $2, email = $3, role = $4, is_driver = $5,
			avatar_url = $6, rating = $7, trips_completed = $8,
			license_type = $9, vehicle_model = $10, vehicle_plate = $11,
			location_sharing_enabled = $12
		WHERE id = $1`,
		u.ID, u.FullName, u.Email, u.Role, u.IsDriver, u.AvatarURL, u.Rating,
		u.TripsCompleted, u.LicenseType, u.VehicleModel, u.VehiclePlate,
		u.LocationSharingEnabled)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetCurrentPosition(ctx context.Context, id types.ID, p types.Point) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET current_lat = $2, current_lng = $3, location_updated_at = now()
		WHERE id = $1`, id, p.Lat, p.Lng)
	if err != nil {
		return fmt.Errorf("update user position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var lat, lng sql.NullFloat64
	var locUpdated sql.NullTime
	err := row.Scan(&u.ID, &u.PhoneNumber, &u.FullName, &u.Email, &u.HashedPassword,
		&u.Role, &u.IsDriver, &u.AvatarURL, &u.Rating, &u.TripsCompleted,
		&u.LicenseType, &u.VehicleModel, &u.VehiclePlate,
		&lat, &lng, &locUpdated, &u.LocationSharingEnabled, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if lat.Valid && lng.Valid {
		u.CurrentPosition = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	if locUpdated.Valid {
		t := locUpdated.Time
		u.LocationUpdatedAt = &t
	}
	return &u, nil
}
