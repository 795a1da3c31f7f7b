package config

import "time"

// TMDBConfig carries the settings for the external movie-metadata client.
// The retry policy lives here, as explicit injectable configuration,
// instead of being patched onto a process-wide HTTP client: constructors
// receive this struct, and tests can shrink the timings to keep runs fast.
//
// BackoffUnit is the unit of the linear retry schedule: the delay before
// retry attempt n is n*BackoffUnit (1s, 2s, 3s with the default unit).
type TMDBConfig struct {
	BaseURL        string        // provider API root, e.g. https://api.themoviedb.org/3
	APIKey         string        // bearer token for the provider
	AttemptTimeout time.Duration // per-attempt HTTP timeout
	MaxRetries     int           // retry attempts after the first failure
	BackoffUnit    time.Duration // linear backoff unit between attempts
}

// LoadTMDBConfig reads the metadata provider settings from environment
// variables. Only the API key is required; everything else has defaults
// matching the provider's documented limits.
func LoadTMDBConfig() TMDBConfig {
	return TMDBConfig{
		BaseURL:        envStr("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		APIKey:         must("TMDB_API_KEY"),
		AttemptTimeout: envDur("TMDB_ATTEMPT_TIMEOUT", 8*time.Second),
		MaxRetries:     envInt("TMDB_MAX_RETRIES", 3),
		BackoffUnit:    envDur("TMDB_BACKOFF_UNIT", time.Second),
	}
}
