package stats

import "time"

// DefaultMonths is the number of monthly buckets used by dashboards.
const DefaultMonths = 12

const monthLabel = "Jan 2006"

// MonthCount is the number of events in one calendar month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthTrend is the rating activity of one calendar month.
type MonthTrend struct {
	Month         string  `json:"month"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// Sample is a rating value with its creation time.
type Sample struct {
	Value int
	At    time.Time
}

// monthStarts returns n+1 boundaries: the first day of each of the n months
// ending with now's month, followed by the start of the next month.
func monthStarts(now time.Time, n int) []time.Time {
	if n <= 0 {
		n = DefaultMonths
	}
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	starts := make([]time.Time, n+1)
	for i := 0; i <= n; i++ {
		starts[i] = current.AddDate(0, i-(n-1), 0)
	}
	return starts
}

// WindowStart is the start of the oldest of monthsBack buckets ending with now's month.
func WindowStart(now time.Time, monthsBack int) time.Time {
	return monthStarts(now, monthsBack)[0]
}

// bucketIndex finds the half-open [starts[i], starts[i+1]) window containing t.
func bucketIndex(starts []time.Time, t time.Time) int {
	t = t.In(starts[0].Location())
	if t.Before(starts[0]) || !t.Before(starts[len(starts)-1]) {
		return -1
	}
	for i := 0; i < len(starts)-1; i++ {
		if t.Before(starts[i+1]) {
			return i
		}
	}
	return -1
}

// BucketByMonth counts times per calendar month over monthsBack months (12 when
// monthsBack <= 0), oldest first and ending with now's month. Times outside the
// window are ignored. The result always has one entry per month.
func BucketByMonth(times []time.Time, now time.Time, monthsBack int) []MonthCount {
	starts := monthStarts(now, monthsBack)
	out := make([]MonthCount, len(starts)-1)
	for i := range out {
		out[i].Month = starts[i].Format(monthLabel)
	}
	for _, t := range times {
		if i := bucketIndex(starts, t); i >= 0 {
			out[i].Count++
		}
	}
	return out
}

// TrendByMonth reports the rounded average and count of ratings created in each
// month of the window. Months without ratings report 0 and 0.
func TrendByMonth(samples []Sample, now time.Time, monthsBack int) []MonthTrend {
	starts := monthStarts(now, monthsBack)
	values := make([][]int, len(starts)-1)
	for _, s := range samples {
		if i := bucketIndex(starts, s.At); i >= 0 {
			values[i] = append(values[i], s.Value)
		}
	}
	out := make([]MonthTrend, len(values))
	for i, vs := range values {
		out[i] = MonthTrend{
			Month:         starts[i].Format(monthLabel),
			AverageRating: RoundedAverage(vs),
			TotalRatings:  len(vs),
		}
	}
	return out
}
