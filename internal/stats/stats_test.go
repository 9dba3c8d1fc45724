package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/internal/stats"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, stats.Average(nil))
	assert.Equal(t, 0.0, stats.Average([]int{}))
	assert.Equal(t, 5.0, stats.Average([]int{5, 5, 5}))
	assert.Equal(t, 3.0, stats.Average([]int{1, 2, 3, 4, 5}))
	assert.InDelta(t, 4.3333, stats.Average([]int{4, 4, 5}), 0.0001)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 4.3, stats.Round(4.3333))
	assert.Equal(t, 4.7, stats.Round(4.6666))
	assert.Equal(t, 2.5, stats.Round(2.45))
	assert.Equal(t, 0.0, stats.Round(0))
	assert.Equal(t, 4.3, stats.RoundedAverage([]int{4, 4, 5}))
}

func TestDistribution(t *testing.T) {
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 0, 4: 0, 5: 2}, stats.Distribution([]int{5, 5, 1}))
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.Distribution(nil))
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 0}, stats.Distribution([]int{0, 3, 6, -1}))
}

func TestTopRated(t *testing.T) {
	items := []stats.Ranked{
		{ID: 1, Name: "a", AverageRating: 3.0, TotalRatings: 2},
		{ID: 2, Name: "b", AverageRating: 0, TotalRatings: 0},
		{ID: 3, Name: "c", AverageRating: 4.5, TotalRatings: 2},
		{ID: 4, Name: "d", AverageRating: 3.0, TotalRatings: 1},
		{ID: 5, Name: "e", AverageRating: 5.0, TotalRatings: 1},
		{ID: 6, Name: "f", AverageRating: 1.0, TotalRatings: 1},
		{ID: 7, Name: "g", AverageRating: 2.0, TotalRatings: 1},
	}

	top := stats.TopRated(items, 0)
	require.Len(t, top, 5)
	ids := make([]uint, len(top))
	for i, r := range top {
		ids[i] = r.ID
	}
	assert.Equal(t, []uint{5, 3, 1, 4, 7}, ids)
	// input untouched
	assert.Equal(t, uint(1), items[0].ID)

	assert.Len(t, stats.TopRated(items, 2), 2)
	assert.Empty(t, stats.TopRated([]stats.Ranked{{ID: 1}}, 5))
}

func TestBucketByMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.March, 31, 23, 59, 59, 0, time.UTC), // before window
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),     // after window
	}

	buckets := stats.BucketByMonth(times, now, 12)
	require.Len(t, buckets, 12)
	assert.Equal(t, "Apr 2023", buckets[0].Month)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, "Feb 2024", buckets[10].Month)
	assert.Equal(t, 1, buckets[10].Count)
	assert.Equal(t, "Mar 2024", buckets[11].Month)
	assert.Equal(t, 2, buckets[11].Count)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 4, total)
}

func TestBucketByMonth_AlwaysFullWindow(t *testing.T) {
	now := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Len(t, stats.BucketByMonth(nil, now, 0), 12)
	assert.Len(t, stats.BucketByMonth(nil, now, -3), 12)

	six := stats.BucketByMonth(nil, now, 6)
	require.Len(t, six, 6)
	assert.Equal(t, "Aug 2024", six[0].Month)
	assert.Equal(t, "Jan 2025", six[5].Month)
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), stats.WindowStart(now, 6))
}

func TestTrendByMonth(t *testing.T) {
	now := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	samples := []stats.Sample{
		{Value: 4, At: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{Value: 5, At: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)},
		{Value: 4, At: time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)},
		{Value: 1, At: time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)},
	}

	trend := stats.TrendByMonth(samples, now, 3)
	require.Len(t, trend, 3)
	assert.Equal(t, stats.MonthTrend{Month: "Apr 2024", AverageRating: 0, TotalRatings: 0}, trend[0])
	assert.Equal(t, stats.MonthTrend{Month: "May 2024", AverageRating: 1, TotalRatings: 1}, trend[1])
	assert.Equal(t, stats.MonthTrend{Month: "Jun 2024", AverageRating: 4.3, TotalRatings: 3}, trend[2])
}
