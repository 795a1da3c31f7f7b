package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/show-booking/internal/tmdb"
)

// NowPlayingAPI is the slice of the metadata client used by MovieHandler.
type NowPlayingAPI interface {
	NowPlaying(ctx context.Context) (*tmdb.NowPlayingPage, error)
}

// MovieHandler serves movie listings sourced directly from the metadata
// provider. Unlike the show endpoints, a provider failure here is a plain
// 500: there is no local fallback to degrade to.
type MovieHandler struct {
	Meta NowPlayingAPI
}

// NewMovieHandler constructs a MovieHandler and panics if the client is nil.
func NewMovieHandler(meta NowPlayingAPI) *MovieHandler {
	if meta == nil {
		panic("nil metadata client passed to NewMovieHandler")
	}
	return &MovieHandler{Meta: meta}
}

// NowPlaying handles GET /now-playing and proxies the provider's current
// now-playing page.
func (h *MovieHandler) NowPlaying(c echo.Context) error {
	page, err := h.Meta.NowPlaying(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "failed to fetch now playing movies",
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "movies": page.Results})
}
