// README: Live rider positions: latest position on the user row, an append
// only history table, and a Redis GEO index for proximity lookups.
package location

import (
	"time"

	"antar/internal/types"
)

type Update struct {
	ID       types.ID    `json:"id"`
	UserID   types.ID    `json:"user_id"`
	Position types.Point `json:"position"`

	// Optional device telemetry reported alongside the fix.
	AccuracyM  *float64 `json:"accuracy_m,omitempty"`
	SpeedKmh   *float64 `json:"speed_kmh,omitempty"`
	HeadingDeg *float64 `json:"heading_deg,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type NearbyUser struct {
	UserID     types.ID `json:"user_id"`
	DistanceKm float64  `json:"distance_km"`
}
