package location

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"antar/internal/geo"
	"antar/internal/types"
)

type Storage interface {
	Insert(ctx context.Context, u *Update) error
	ListByUser(ctx context.Context, userID types.ID, limit int) ([]*Update, error)
}

// PositionWriter updates the latest position stored on the user record.
type PositionWriter interface {
	SetCurrentPosition(ctx context.Context, id types.ID, p types.Point) error
}

// GeoIndex maintains the live proximity index.
type GeoIndex interface {
	Set(ctx context.Context, userID types.ID, p types.Point) error
	Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]NearbyUser, error)
}

// Broadcaster pushes position updates to connected clients.
type Broadcaster interface {
	Broadcast(payload []byte)
}

type Service struct {
	store  Storage
	users  PositionWriter
	index  GeoIndex
	hub    Broadcaster
	logger *slog.Logger
}

func NewService(store Storage, users PositionWriter, index GeoIndex, hub Broadcaster, logger *slog.Logger) *Service {
	return &Service{store: store, users: users, index: index, hub: hub, logger: logger}
}

// Telemetry carries the optional device readings for a position fix.
type Telemetry struct {
	AccuracyM  *float64
	SpeedKmh   *float64
	HeadingDeg *float64
}

// Record persists a position update, refreshes the user's latest position and
// the proximity index, and fans the update out over the live feed. Index and
// broadcast failures are logged, not surfaced; the database write is the
// source of truth.
func (s *Service) Record(ctx context.Context, userID types.ID, p types.Point, tel Telemetry) (*Update, error) {
	if err := geo.Validate(p); err != nil {
		return nil, err
	}
	u := &Update{
		ID:         newID(),
		UserID:     userID,
		Position:   p,
		AccuracyM:  tel.AccuracyM,
		SpeedKmh:   tel.SpeedKmh,
		HeadingDeg: tel.HeadingDeg,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	if err := s.users.SetCurrentPosition(ctx, userID, p); err != nil {
		return nil, err
	}
	if s.index != nil {
		if err := s.index.Set(ctx, userID, p); err != nil {
			s.logger.Warn("geo index update failed", "user_id", userID, "error", err)
		}
	}
	if s.hub != nil {
		payload, err := json.Marshal(u)
		if err == nil {
			s.hub.Broadcast(payload)
		}
	}
	return u, nil
}

func (s *Service) History(ctx context.Context, userID types.ID, limit int) ([]*Update, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListByUser(ctx, userID, limit)
}

func (s *Service) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]NearbyUser, error) {
	if err := geo.Validate(p); err != nil {
		return nil, err
	}
	if s.index == nil {
		return nil, nil
	}
	if radiusKm <= 0 {
		radiusKm = 5
	}
	return s.index.Nearby(ctx, p, radiusKm)
}

func newID() types.ID {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return types.ID(hex.EncodeToString(b))
}
