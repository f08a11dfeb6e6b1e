// README: Match record, status enumeration, and route-overlap result types.
package match

import (
	"errors"
	"time"

	"antar/internal/types"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound     = errors.New("match not found")
	ErrInvalidState = errors.New("invalid state transition")
)

// Match pairs two trips of opposite type. The pair is conceptually unordered:
// (A,B) and (B,A) describe the same real-world match, and the engine never
// creates both.
type Match struct {
	ID            types.ID `json:"id"`
	TripID        types.ID `json:"trip_id"`
	MatchedTripID types.ID `json:"matched_trip_id"`

	Score           float64   `json:"score"`            // 0-100
	OverlapPercent  float64   `json:"overlap_percent"`  // 0-100
	OverlapDistance float64   `json:"overlap_distance"` // km, >= 0
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OtherSide returns the trip on the opposite side of the pair from tripID.
func (m *Match) OtherSide(tripID types.ID) types.ID {
	if m.TripID == tripID {
		return m.MatchedTripID
	}
	return m.TripID
}

// Overlap is the endpoint-proximity result produced by the route scorer.
type Overlap struct {
	OverlapPercentage float64
	OverlapDistanceKm float64
	OriginGapKm       float64
	DestinationGapKm  float64
}
