// README: Trip aggregate, type/status enumerations, and the transition table.
package trip

import (
	"time"

	"antar/internal/types"
)

type Type string

const (
	TypeOffer   Type = "offer"
	TypeRequest Type = "request"
)

// Opposite returns the counter-type a trip can be matched against.
func (t Type) Opposite() Type {
	if t == TypeOffer {
		return TypeRequest
	}
	return TypeOffer
}

func (t Type) Valid() bool {
	return t == TypeOffer || t == TypeRequest
}

type Status string

const (
	StatusSearching  Status = "searching"
	StatusMatched    Status = "matched"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Trip struct {
	ID     types.ID `json:"id"`
	UserID types.ID `json:"user_id"`
	Type   Type     `json:"type"`
	Status Status   `json:"status"`

	Origin             types.Point `json:"origin"`
	OriginAddress      string      `json:"origin_address"`
	Destination        types.Point `json:"destination"`
	DestinationAddress string      `json:"destination_address"`

	// DepartureDate is a calendar date ("2006-01-02"); DepartureTime a local
	// clock time ("15:04"). Both are stored as text, matching the mobile app.
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`

	SeatsAvailable *int    `json:"seats_available"`
	Price          float64 `json:"price"`

	// DistanceKm is the straight-line origin to destination distance,
	// computed once at creation.
	DistanceKm float64 `json:"distance_km"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AllowedTransitions represents the trip state flow as code. Cancellation is
// reachable from every non-terminal state.
var AllowedTransitions = map[Status][]Status{
	StatusSearching:  {StatusMatched, StatusCancelled},
	StatusMatched:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
