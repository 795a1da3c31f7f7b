package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinebook/show-booking/internal/config"
	"github.com/cinebook/show-booking/internal/handler"
	"github.com/cinebook/show-booking/internal/middleware"
)

// RegisterRoutes registers the routes that carry no middleware. At the
// moment that is only the health check, which load balancers poll.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterShows wires the show endpoints. The browse GETs sit behind the
// Redis response cache and the rate limiter; the ingestion POST is never
// cached. When rdb is nil both middleware degrade to pass-throughs.
func RegisterShows(e *echo.Echo, h *handler.ShowHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.POST("/shows", h.AddShow, limiter)
	e.GET("/shows", h.ListShows, limiter, cache)
	e.GET("/shows/:movieId", h.GetShowtimes, limiter, cache)
}

// RegisterMovies wires the provider-backed movie listing. The response is
// cached so a burst of browsing traffic does not multiply provider calls,
// which are rate limited upstream.
func RegisterMovies(e *echo.Echo, h *handler.MovieHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.GET("/now-playing", h.NowPlaying, limiter, cache)
}
