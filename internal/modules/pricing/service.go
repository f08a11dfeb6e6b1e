// README: Pricing service computes suggested fares from trip distance.
package pricing

import (
	"context"
	"errors"
	"math"

	"antar/internal/types"
)

type RateSource interface {
	GetRate(ctx context.Context, tripKind string) (Rate, error)
}

type Service struct {
	rates RateSource
}

func NewService(rates RateSource) *Service {
	return &Service{rates: rates}
}

// defaultRate applies when the rates table has no row for the trip kind.
var defaultRate = Rate{BaseFare: 50, PerKm: 12, Currency: "IDR"}

// Suggest returns the suggested fare for a trip of the given distance. Seats
// splits the total across riders; seats <= 1 means the whole fare is borne by
// one rider.
func (s *Service) Suggest(ctx context.Context, tripKind string, distanceKm float64, seats int) (Estimate, error) {
	rate := defaultRate
	if s.rates != nil {
		r, err := s.rates.GetRate(ctx, tripKind)
		if err == nil {
			rate = r
		} else if !errors.Is(err, ErrRateNotFound) {
			return Estimate{}, err
		}
	}

	distanceCharge := int64(math.Ceil(distanceKm * float64(rate.PerKm)))
	total := rate.BaseFare + distanceCharge

	if seats < 1 {
		seats = 1
	}
	perSeat := int64(math.Ceil(float64(total) / float64(seats)))

	return Estimate{
		Total:   types.Money{Amount: total, Currency: rate.Currency},
		PerSeat: types.Money{Amount: perSeat, Currency: rate.Currency},
		Breakdown: map[string]int64{
			"base_fare": rate.BaseFare,
			"distance":  distanceCharge,
		},
	}, nil
}
