package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"antar/internal/types"
)

// GeocodingService handles interactions with the Google Geocoding API.
type GeocodingService struct {
	client *maps.Client
}

// NewGeocodingService creates a new GeocodingService with the given API key.
func NewGeocodingService(apiKey string) (*GeocodingService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodingService{client: client}, nil
}

// Geocode resolves a free-form address to coordinates.
func (s *GeocodingService) Geocode(ctx context.Context, address string) (types.Point, string, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return types.Point{}, "", fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, "", fmt.Errorf("no results for address %q", address)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, results[0].FormattedAddress, nil
}

// ReverseGeocode resolves coordinates to the nearest formatted address.
func (s *GeocodingService) ReverseGeocode(ctx context.Context, p types.Point) (string, error) {
	results, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no address at %.5f,%.5f", p.Lat, p.Lng)
	}
	return results[0].FormattedAddress, nil
}
