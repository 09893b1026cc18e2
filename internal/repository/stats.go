package repository

import (
	"sort"
	"time"
)

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// bucketByDay counts timestamps per UTC calendar day. Days without events
// are omitted and points are ordered by date.
func bucketByDay(stamps []time.Time) []TimeSeriesPoint {
	counts := map[string]int64{}
	for _, t := range stamps {
		counts[t.UTC().Format("2006-01-02")]++
	}
	out := make([]TimeSeriesPoint, 0, len(counts))
	for d, c := range counts {
		out = append(out, TimeSeriesPoint{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
