package matching

import (
	"sort"

	"gigmatch/models"
)

// Rank orders results in place: match score descending, then rating
// descending, then distance ascending, then musician ID for a total order.
func Rank(results []models.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.Musician.Rating != b.Musician.Rating {
			return a.Musician.Rating > b.Musician.Rating
		}
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		return a.Musician.ID < b.Musician.ID
	})
}

// FilterByDistance drops results farther than maxDistance. A nil bound keeps all.
func FilterByDistance(results []models.MatchResult, maxDistance *float64) []models.MatchResult {
	if maxDistance == nil {
		return results
	}
	kept := results[:0]
	for _, r := range results {
		if r.Distance <= *maxDistance {
			kept = append(kept, r)
		}
	}
	return kept
}

// TopK returns the first k results of a ranked list. k <= 0 returns all.
func TopK(results []models.MatchResult, k int) []models.MatchResult {
	if k <= 0 || len(results) <= k {
		return results
	}
	return results[:k]
}
