// README: Match service: visibility filtering for listing and the
// accept/reject transition.
package match

import (
	"context"
	"time"

	"antar/internal/modules/trip"
	"antar/internal/types"
)

// TripAccess resolves trips for existence checks and flips their statuses
// when a match is accepted.
type TripAccess interface {
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
	UpdateStatus(ctx context.Context, id types.ID, status trip.Status) error
}

type Service struct {
	matches Storage
	trips   TripAccess
}

func NewService(matches Storage, trips TripAccess) *Service {
	return &Service{matches: matches, trips: trips}
}

// AvailableMatches lists the actionable matches for a trip. A match is
// filtered out once its counterpart trip holds an accepted match elsewhere:
// the counterpart has committed and the pairing is moot. The accepted match
// itself always survives the filter so both committed parties keep seeing it.
//
// Exclusivity is enforced here at read time only; accepting a match does not
// mutate its siblings.
func (s *Service) AvailableMatches(ctx context.Context, tripID types.ID) ([]*Match, error) {
	if _, err := s.trips.Get(ctx, tripID); err != nil {
		return nil, err
	}
	all, err := s.matches.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	available := make([]*Match, 0, len(all))
	for _, m := range all {
		otherID := m.OtherSide(tripID)
		committed, err := s.matches.HasAcceptedExcluding(ctx, otherID, m.ID)
		if err != nil {
			return nil, err
		}
		if !committed || m.Status == StatusAccepted {
			available = append(available, m)
		}
	}
	return available, nil
}

// SetStatus applies the accept/reject transition. pending→accepted also moves
// both referenced trips to matched; pending→rejected has no trip side effect.
// Accepted and rejected are terminal.
func (s *Service) SetStatus(ctx context.Context, matchID types.ID, status Status) (*Match, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, ErrInvalidState
	}
	m, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := s.matches.UpdateStatus(ctx, matchID, status); err != nil {
		return nil, err
	}
	m.Status = status
	m.UpdatedAt = time.Now()

	if status == StatusAccepted {
		if err := s.trips.UpdateStatus(ctx, m.TripID, trip.StatusMatched); err != nil {
			return nil, err
		}
		if err := s.trips.UpdateStatus(ctx, m.MatchedTripID, trip.StatusMatched); err != nil {
			return nil, err
		}
	}
	return m, nil
}
