package matching

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxDistanceKm is the upper bound returned by CalculateDistance.
const MaxDistanceKm = 50.0

// CalculateDistance approximates the distance in km between two free-text
// locations. It stands in for a geocoding service: the result is a pure function
// of the normalized, unordered pair, so repeated searches rank identically.
func CalculateDistance(locationA, locationB string) float64 {
	a := normalizeLocation(locationA)
	b := normalizeLocation(locationB)
	if a == b {
		return 0
	}
	if b < a {
		a, b = b, a
	}
	h := xxhash.Sum64String(a + "\x00" + b)
	// 0.01 km resolution over [0, MaxDistanceKm].
	steps := uint64(MaxDistanceKm*100) + 1
	return float64(h%steps) / 100
}

func normalizeLocation(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}
