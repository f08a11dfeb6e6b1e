package location

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"antar/internal/types"
)

const geoKey = "live:positions"

// RedisGeoIndex backs the proximity index with a Redis GEO set.
type RedisGeoIndex struct {
	client *redis.Client
}

func NewRedisGeoIndex(client *redis.Client) *RedisGeoIndex {
	return &RedisGeoIndex{client: client}
}

func (g *RedisGeoIndex) Set(ctx context.Context, userID types.ID, p types.Point) error {
	err := g.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      string(userID),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
	if err != nil {
		return fmt.Errorf("geoadd: %w", err)
	}
	return nil
}

func (g *RedisGeoIndex) Nearby(ctx context.Context, p types.Point, radiusKm float64) ([]NearbyUser, error) {
	locs, err := g.client.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  p.Lng,
			Latitude:   p.Lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geosearch: %w", err)
	}
	out := make([]NearbyUser, 0, len(locs))
	for _, loc := range locs {
		out = append(out, NearbyUser{UserID: types.ID(loc.Name), DistanceKm: loc.Dist})
	}
	return out, nil
}
