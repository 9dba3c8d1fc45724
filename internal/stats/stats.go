// Package stats computes rating aggregates. Every function is pure; callers load
// the data and pass it in.
package stats

import (
	"math"
	"sort"

	"storerating/internal/models"
)

// Average returns the arithmetic mean of values, or 0 when there are none.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Round rounds x to one decimal place. It is the only rounding used for displayed averages.
func Round(x float64) float64 {
	return math.Round(x*10) / 10
}

// RoundedAverage is Round(Average(values)).
func RoundedAverage(values []int) float64 {
	return Round(Average(values))
}

// Distribution counts values per rating. Keys MinRating..MaxRating are always
// present; out-of-range values are ignored.
func Distribution(values []int) map[int]int {
	dist := make(map[int]int, models.MaxRating)
	for r := models.MinRating; r <= models.MaxRating; r++ {
		dist[r] = 0
	}
	for _, v := range values {
		if models.ValidRatingValue(v) {
			dist[v]++
		}
	}
	return dist
}

// Ranked is one entry of a top-rated listing.
type Ranked struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

const defaultTopLimit = 5

// TopRated drops unrated items, orders the rest by average descending (ties keep
// their input order) and returns at most limit entries. limit <= 0 means 5.
// The input slice is not modified.
func TopRated(items []Ranked, limit int) []Ranked {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	rated := make([]Ranked, 0, len(items))
	for _, it := range items {
		if it.TotalRatings > 0 {
			rated = append(rated, it)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].AverageRating > rated[j].AverageRating
	})
	if len(rated) > limit {
		rated = rated[:limit]
	}
	return rated
}
