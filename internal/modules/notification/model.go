// README: In-app notifications: match alerts, trip state changes, chat pings.
package notification

import (
	"errors"
	"time"

	"antar/internal/types"
)

var ErrNotFound = errors.New("notification not found")

const (
	KindMatch   = "match"
	KindTrip    = "trip"
	KindMessage = "message"
)

type Notification struct {
	ID        types.ID  `json:"id"`
	UserID    types.ID  `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID types.ID  `json:"related_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
