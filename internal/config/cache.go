package config

import "time"

// CacheConfig defines settings for the response cache middleware applied
// to the browse endpoints. When Enabled is false or no Redis client is
// available, caching is a no-op. Upcoming-show listings change only when
// shows are ingested, so a short TTL keeps responses fresh enough while
// absorbing repeated browsing traffic.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
	}
}
