// Package queue defines message payloads exchanged over the message
// broker, plus the publisher and the background consumer for them.
package queue

// ShowsScheduledEvent is published when an ingestion request successfully
// materializes show records. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ShowsScheduledEvent struct {
	MovieID     string   `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	ShowCount   int      `json:"show_count"`
	Price       float64  `json:"price"`
	ShowTimes   []string `json:"show_times"` // RFC3339 timestamps, insertion order
	ScheduledAt string   `json:"scheduled_at"`
}
