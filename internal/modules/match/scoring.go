// README: Pure scoring functions: route overlap, time proximity, and the
// weighted composite match score.
package match

import (
	"math"
	"strconv"
	"strings"

	"antar/internal/geo"
	"antar/internal/modules/trip"
)

// Fixed scoring weights: route overlap carries 50 points, time proximity 25,
// reputation 25.
const (
	routeWeight      = 50.0
	timeWeight       = 25.0
	ratingWeight     = 25.0
	maxRating        = 5.0
	timeDecayMinutes = 60.0
)

// ComputeOverlap scores endpoint proximity between two trips. Origin and
// destination gaps are each normalized against gapKm, the policy threshold
// from config.MatchingConfig; a gap at or beyond it contributes nothing. The
// overlap distance is only estimated once the percentage clears 60; below
// that the routes are considered divergent and the figure would be
// meaningless.
func ComputeOverlap(a, b *trip.Trip, gapKm float64) (Overlap, error) {
	originGap, err := geo.DistanceKm(a.Origin, b.Origin)
	if err != nil {
		return Overlap{}, err
	}
	destGap, err := geo.DistanceKm(a.Destination, b.Destination)
	if err != nil {
		return Overlap{}, err
	}

	originScore := math.Max(0, 1-originGap/gapKm)
	destScore := math.Max(0, 1-destGap/gapKm)
	pct := round2(((originScore + destScore) / 2) * 100)

	var overlapKm float64
	if pct > 60 {
		lenA, err := geo.DistanceKm(a.Origin, a.Destination)
		if err != nil {
			return Overlap{}, err
		}
		lenB, err := geo.DistanceKm(b.Origin, b.Destination)
		if err != nil {
			return Overlap{}, err
		}
		overlapKm = round2(math.Min(lenA, lenB) * (pct / 100))
	}

	return Overlap{
		OverlapPercentage: pct,
		OverlapDistanceKm: overlapKm,
		OriginGapKm:       round2(originGap),
		DestinationGapKm:  round2(destGap),
	}, nil
}

// ParseClockMinutes converts an "HH:MM" clock string to minutes since
// midnight. Malformed input parses to 0 rather than failing: one bad record
// must not abort a matching run.
func ParseClockMinutes(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}
	return h*60 + m
}

// TimeProximityScore maps a departure-time difference in minutes to [0,25]:
// full marks at zero, decaying linearly to zero at 60 minutes and beyond.
func TimeProximityScore(diffMinutes float64) float64 {
	return math.Max(0, (1-diffMinutes/timeDecayMinutes)*timeWeight)
}

// Score combines route overlap (50), time proximity (25), and the averaged
// counterparty rating (25) into a composite in [0,100]. No component can
// exceed its own cap, so 100 requires a perfect showing on all three.
func Score(ov Overlap, timeDiffMinutes, ratingA, ratingB float64) float64 {
	routeScore := (ov.OverlapPercentage / 100) * routeWeight
	timeScore := TimeProximityScore(timeDiffMinutes)
	ratingScore := ((ratingA + ratingB) / 2 / maxRating) * ratingWeight
	return round2(routeScore + timeScore + ratingScore)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
