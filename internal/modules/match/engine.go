// README: Matching engine: selects counter-trip candidates, scores them, and
// persists qualifying matches with a notification fan-out.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"antar/internal/config"
	"antar/internal/modules/trip"
	"antar/internal/observability"
	"antar/internal/types"
)

// TripSource supplies the trip under evaluation and its candidate set.
type TripSource interface {
	Get(ctx context.Context, id types.ID) (*trip.Trip, error)
	ListCandidates(ctx context.Context, tripType trip.Type, status trip.Status, departureDate string, excludeID types.ID) ([]*trip.Trip, error)
}

// RatingSource resolves a user's reputation on the 0-5 scale.
type RatingSource interface {
	RatingOf(ctx context.Context, userID types.ID) (float64, error)
}

// Storage is the match persistence contract used by the engine and service.
type Storage interface {
	Insert(ctx context.Context, m *Match) error
	Get(ctx context.Context, id types.ID) (*Match, error)
	ListByTrip(ctx context.Context, tripID types.ID) ([]*Match, error)
	ExistsForPair(ctx context.Context, a, b types.ID) (bool, error)
	HasAcceptedExcluding(ctx context.Context, tripID, excludeMatchID types.ID) (bool, error)
	UpdateStatus(ctx context.Context, id types.ID, status Status) error
}

// Notifier submits a fire-and-forget notification; delivery is owned by the
// notification module.
type Notifier interface {
	Submit(ctx context.Context, userID types.ID, kind, title, message string, relatedID types.ID) error
}

type Engine struct {
	trips   TripSource
	ratings RatingSource
	matches Storage
	notify  Notifier
	cfg     config.MatchingConfig
	logger  *slog.Logger
}

func NewEngine(trips TripSource, ratings RatingSource, matches Storage, notify Notifier, cfg config.MatchingConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{trips: trips, ratings: ratings, matches: matches, notify: notify, cfg: cfg, logger: logger}
}

// Run evaluates all open counter-trips for tripID and persists every pairing
// whose composite score clears the policy thresholds. It is invoked
// synchronously after trip creation and on explicit re-trigger.
//
// Failures are isolated per candidate: a bad coordinate, a failed insert, or
// a failed notification skips that candidate and the run continues. The run
// is not transactional across candidates.
func (e *Engine) Run(ctx context.Context, tripID types.ID) error {
	start := time.Now()
	observability.MatchRunsTotal.Inc()
	defer func() {
		observability.MatchRunDuration.Observe(time.Since(start).Seconds())
	}()

	t, err := e.trips.Get(ctx, tripID)
	if errors.Is(err, trip.ErrNotFound) {
		// Trip deleted concurrently; nothing to do.
		return nil
	}
	if err != nil {
		return err
	}
	// Matches only ever pair two searching trips.
	if t.Status != trip.StatusSearching {
		return nil
	}

	candidates, err := e.trips.ListCandidates(ctx, t.Type.Opposite(), trip.StatusSearching, t.DepartureDate, t.ID)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	ownRating, err := e.ratings.RatingOf(ctx, t.UserID)
	if err != nil {
		return fmt.Errorf("rating of trip owner %s: %w", t.UserID, err)
	}

	tripMinutes := ParseClockMinutes(t.DepartureTime)

	for _, cand := range candidates {
		observability.CandidatesEvaluated.Inc()

		ov, err := ComputeOverlap(t, cand, e.cfg.EndpointGapKm)
		if err != nil {
			e.logger.Warn("skipping candidate with bad geometry", "trip_id", t.ID, "candidate_id", cand.ID, "error", err)
			continue
		}
		if ov.OverlapPercentage <= e.cfg.MinOverlapPercent {
			continue
		}

		candRating, err := e.ratings.RatingOf(ctx, cand.UserID)
		if err != nil {
			e.logger.Warn("skipping candidate, rating lookup failed", "candidate_id", cand.ID, "error", err)
			continue
		}

		timeDiff := math.Abs(float64(tripMinutes - ParseClockMinutes(cand.DepartureTime)))
		score := Score(ov, timeDiff, ownRating, candRating)
		if score <= e.cfg.MinMatchScore {
			continue
		}

		// Repeated runs must not duplicate the unordered pair.
		exists, err := e.matches.ExistsForPair(ctx, t.ID, cand.ID)
		if err != nil {
			e.logger.Warn("skipping candidate, pair lookup failed", "candidate_id", cand.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		now := time.Now()
		m := &Match{
			ID:              trip.NewID(),
			TripID:          t.ID,
			MatchedTripID:   cand.ID,
			Score:           score,
			OverlapPercent:  ov.OverlapPercentage,
			OverlapDistance: ov.OverlapDistanceKm,
			Status:          StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := e.matches.Insert(ctx, m); err != nil {
			e.logger.Error("match insert failed", "trip_id", t.ID, "candidate_id", cand.ID, "error", err)
			continue
		}
		observability.MatchesCreated.Inc()
		e.logger.Info("match created",
			"match_id", m.ID, "trip_id", t.ID, "candidate_id", cand.ID,
			"score", score, "overlap_percent", ov.OverlapPercentage)

		e.notifyOwner(ctx, t.UserID, m)
		e.notifyOwner(ctx, cand.UserID, m)
	}
	return nil
}

func (e *Engine) notifyOwner(ctx context.Context, userID types.ID, m *Match) {
	if e.notify == nil {
		return
	}
	msg := fmt.Sprintf("A rider is going your way with a %.0f%% match", m.Score)
	if err := e.notify.Submit(ctx, userID, "match", "New Match Found!", msg, m.ID); err != nil {
		e.logger.Warn("match notification failed", "user_id", userID, "match_id", m.ID, "error", err)
	}
}
