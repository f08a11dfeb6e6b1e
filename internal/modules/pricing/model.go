// README: Fare suggestion for posted trips. Rates are per trip kind so
// drivers offering seats and riders requesting them can be tuned separately.
package pricing

import (
	"errors"

	"antar/internal/types"
)

var ErrRateNotFound = errors.New("rate not found")

type Rate struct {
	TripKind string
	BaseFare int64
	PerKm    int64
	Currency string
}

type Estimate struct {
	Total     types.Money      `json:"total"`
	PerSeat   types.Money      `json:"per_seat"`
	Breakdown map[string]int64 `json:"breakdown"`
}
