package services

import (
	"github.com/jwsummers/OnTrack/models"
)

// InvalidDateKey is the bucket for entries whose timestamp cannot be
// interpreted. Aggregation never drops an entry.
const InvalidDateKey = "Invalid Date"

// dayKeyLayout matches the calendar-day rendering the history view shows,
// e.g. "Thu Aug 28 2025".
const dayKeyLayout = "Mon Jan 02 2006"

// AggregateByDay groups a flat entry list by calendar day, preserving the
// input order within each bucket. The returned key slice carries first-seen
// order, so a date-descending input yields most-recent-day-first keys.
func AggregateByDay(entries []models.IntakeEntry) (map[string][]models.IntakeEntry, []string) {
	buckets := make(map[string][]models.IntakeEntry, len(entries))
	keys := make([]string, 0, len(entries))

	for _, e := range entries {
		key := InvalidDateKey
		if !e.Date.IsZero() {
			key = e.Date.Format(dayKeyLayout)
		}
		if _, seen := buckets[key]; !seen {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], e)
	}
	return buckets, keys
}
