package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"antar/internal/types"
)

// RouteService handles interactions with the Google Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// TravelEstimate returns the driving duration and road distance between two
// points.
func (s *RouteService) TravelEstimate(ctx context.Context, origin, destination types.Point) (time.Duration, float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        maps.TravelModeDriving,
		Language:    "id",
		Region:      "ID",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, 0, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return leg.Duration, float64(leg.Distance.Meters) / 1000.0, nil
}
