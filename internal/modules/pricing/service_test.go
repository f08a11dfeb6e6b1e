package pricing

import (
	"context"
	"testing"
)

type fakeRates struct {
	rate Rate
	err  error
}

func (f *fakeRates) GetRate(_ context.Context, _ string) (Rate, error) {
	return f.rate, f.err
}

func TestService_Suggest(t *testing.T) {
	tests := []struct {
		name        string
		rates       RateSource
		distanceKm  float64
		seats       int
		wantTotal   int64
		wantPerSeat int64
	}{
		{
			name:        "default rate when store is nil",
			rates:       nil,
			distanceKm:  10,
			seats:       1,
			wantTotal:   50 + 120,
			wantPerSeat: 170,
		},
		{
			name:        "default rate when no row exists",
			rates:       &fakeRates{err: ErrRateNotFound},
			distanceKm:  10,
			seats:       1,
			wantTotal:   170,
			wantPerSeat: 170,
		},
		{
			name:        "configured rate",
			rates:       &fakeRates{rate: Rate{BaseFare: 100, PerKm: 20, Currency: "IDR"}},
			distanceKm:  5,
			seats:       1,
			wantTotal:   200,
			wantPerSeat: 200,
		},
		{
			name:        "fractional distance rounds up",
			rates:       &fakeRates{rate: Rate{BaseFare: 100, PerKm: 20, Currency: "IDR"}},
			distanceKm:  5.05,
			seats:       1,
			wantTotal:   100 + 101,
			wantPerSeat: 201,
		},
		{
			name:        "split across seats rounds up",
			rates:       &fakeRates{rate: Rate{BaseFare: 100, PerKm: 20, Currency: "IDR"}},
			distanceKm:  5,
			seats:       3,
			wantTotal:   200,
			wantPerSeat: 67,
		},
		{
			name:        "zero seats treated as one",
			rates:       &fakeRates{rate: Rate{BaseFare: 100, PerKm: 20, Currency: "IDR"}},
			distanceKm:  5,
			seats:       0,
			wantTotal:   200,
			wantPerSeat: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(tt.rates)
			got, err := s.Suggest(context.Background(), "offer", tt.distanceKm, tt.seats)
			if err != nil {
				t.Fatalf("Suggest() error = %v", err)
			}
			if got.Total.Amount != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got.Total.Amount, tt.wantTotal)
			}
			if got.PerSeat.Amount != tt.wantPerSeat {
				t.Errorf("PerSeat = %d, want %d", got.PerSeat.Amount, tt.wantPerSeat)
			}
		})
	}
}
