// README: Trip service implements creation, listing, updates, and cancellation.
package trip

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"antar/internal/geo"
	"antar/internal/types"
)

var (
	ErrNotFound     = errors.New("trip not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrBadRequest   = errors.New("bad request")
)

// Storage is the persistence contract the service needs. The match engine
// shares the candidate query through the same interface.
type Storage interface {
	Create(ctx context.Context, t *Trip) error
	Get(ctx context.Context, id types.ID) (*Trip, error)
	ListByUser(ctx context.Context, userID types.ID) ([]*Trip, error)
	ListCandidates(ctx context.Context, tripType Type, status Status, departureDate string, excludeID types.ID) ([]*Trip, error)
	Update(ctx context.Context, t *Trip) error
	UpdateStatus(ctx context.Context, id types.ID, status Status) error
}

// Matcher is invoked after a trip is created. Matching failures never fail
// trip creation.
type Matcher interface {
	Run(ctx context.Context, tripID types.ID) error
}

type Service struct {
	store   Storage
	matcher Matcher
	logger  *slog.Logger
}

func NewService(store Storage, matcher Matcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, matcher: matcher, logger: logger}
}

type CreateCommand struct {
	UserID             types.ID
	Type               Type
	Origin             types.Point
	OriginAddress      string
	Destination        types.Point
	DestinationAddress string
	DepartureDate      string
	DepartureTime      string
	SeatsAvailable     *int
	Price              float64
}

type UpdateCommand struct {
	Status         *Status
	SeatsAvailable *int
	Price          *float64
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if cmd.UserID == "" || !cmd.Type.Valid() || cmd.DepartureDate == "" || cmd.DepartureTime == "" {
		return nil, ErrBadRequest
	}
	if cmd.Price < 0 {
		return nil, ErrBadRequest
	}
	distance, err := geo.DistanceKm(cmd.Origin, cmd.Destination)
	if err != nil {
		return nil, ErrBadRequest
	}

	now := time.Now()
	t := &Trip{
		ID:                 NewID(),
		UserID:             cmd.UserID,
		Type:               cmd.Type,
		Status:             StatusSearching,
		Origin:             cmd.Origin,
		OriginAddress:      cmd.OriginAddress,
		Destination:        cmd.Destination,
		DestinationAddress: cmd.DestinationAddress,
		DepartureDate:      cmd.DepartureDate,
		DepartureTime:      cmd.DepartureTime,
		SeatsAvailable:     cmd.SeatsAvailable,
		Price:              cmd.Price,
		DistanceKm:         distance,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	if s.matcher != nil {
		if err := s.matcher.Run(ctx, t.ID); err != nil {
			s.logger.Error("matching after trip create failed", "trip_id", t.ID, "error", err)
		}
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID types.ID) ([]*Trip, error) {
	return s.store.ListByUser(ctx, userID)
}

// Update applies a partial update. Status changes go through the transition
// table; seats and price are free-form (seats only meaningful for offers).
func (s *Service) Update(ctx context.Context, id types.ID, cmd UpdateCommand) (*Trip, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Status != nil && *cmd.Status != t.Status {
		if !CanTransition(t.Status, *cmd.Status) {
			return nil, ErrInvalidState
		}
		t.Status = *cmd.Status
	}
	if cmd.SeatsAvailable != nil {
		t.SeatsAvailable = cmd.SeatsAvailable
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, ErrBadRequest
		}
		t.Price = *cmd.Price
	}
	t.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Cancel is a soft delete: the row stays, status flips to cancelled.
func (s *Service) Cancel(ctx context.Context, id types.ID) error {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(t.Status, StatusCancelled) {
		return ErrInvalidState
	}
	return s.store.UpdateStatus(ctx, id, StatusCancelled)
}

// NewID returns a 32-char hex identifier.
func NewID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
