package model

import (
	"fmt"
	"time"
)

// ShowInput is the compact client-supplied representation of multiple
// showtimes across multiple dates for one movie. It is an ingestion
// payload only and is never persisted as such: each (date, time) pair
// expands into exactly one Show.
type ShowInput struct {
	Date  string   `json:"date"` // ISO date, e.g. "2024-05-01"
	Times []string `json:"time"` // times of day in "15:04" order as given
}

// CombineDateTime merges an ISO date and a time-of-day string into a
// single UTC timestamp. Malformed input is rejected rather than producing
// an invalid date value.
func CombineDateTime(date, tod string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+tod)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid show date/time %q %q: %w", date, tod, err)
	}
	return t.UTC(), nil
}
