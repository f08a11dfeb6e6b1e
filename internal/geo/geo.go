// README: Pure great-circle distance helpers shared by trip and match modules.
package geo

import (
	"errors"
	"math"

	"antar/internal/types"
)

const earthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned for latitudes outside [-90,90] or
// longitudes outside [-180,180].
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// DistanceKm returns the haversine distance in kilometres between two
// points specified in decimal degrees.
func DistanceKm(a, b types.Point) (float64, error) {
	if !valid(a) || !valid(b) {
		return 0, ErrInvalidCoordinate
	}

	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c, nil
}

// Validate reports whether p is a usable coordinate pair.
func Validate(p types.Point) error {
	if !valid(p) {
		return ErrInvalidCoordinate
	}
	return nil
}

func valid(p types.Point) bool {
	return math.Abs(p.Lat) <= 90 && math.Abs(p.Lng) <= 180
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
