// Package handler exposes the HTTP surface of the service. Every public
// operation catches its failures here and converts them into a structured
// {success, message} body; only the now-playing listing signals failure
// with a 500 status, which is the contract this API's clients already
// depend on.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/show-booking/internal/model"
	"github.com/cinebook/show-booking/internal/queue"
	"github.com/cinebook/show-booking/internal/service"
)

// IngestionAPI is the slice of the ingestion service used by handlers.
type IngestionAPI interface {
	AddShow(ctx context.Context, movieID string, showsInput []model.ShowInput, showPrice float64) (*service.AddShowResult, error)
}

// QueryAPI is the slice of the query service used by handlers.
type QueryAPI interface {
	ListUpcomingMovies(ctx context.Context) ([]model.Movie, error)
	GetShowtimes(ctx context.Context, movieID string) (*service.Showtimes, error)
}

// ShowHandler bundles the ingestion and query services behind the show
// endpoints.
type ShowHandler struct {
	Ingestion IngestionAPI
	Query     QueryAPI
}

// NewShowHandler constructs a ShowHandler and panics if a dependency is nil.
func NewShowHandler(ingestion IngestionAPI, query QueryAPI) *ShowHandler {
	if ingestion == nil || query == nil {
		panic("nil service passed to NewShowHandler")
	}
	return &ShowHandler{Ingestion: ingestion, Query: query}
}

// addShowRequest is the POST /shows body.
type addShowRequest struct {
	MovieID    string            `json:"movieId"`
	ShowsInput []model.ShowInput `json:"showsInput"`
	ShowPrice  float64           `json:"showPrice"`
}

// AddShow handles POST /shows. Missing fields produce a 400; every other
// outcome, success or failure, is a 200 whose success flag carries the
// real result.
func (h *ShowHandler) AddShow(c echo.Context) error {
	var body addShowRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	if body.MovieID == "" || len(body.ShowsInput) == 0 || body.ShowPrice == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "movieId, showsInput and showPrice are required"})
	}

	res, err := h.Ingestion.AddShow(c.Request().Context(), body.MovieID, body.ShowsInput, body.ShowPrice)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": err.Error()})
	}

	// Eventing is best-effort: scheduling already succeeded, so a broker
	// outage must not fail the request.
	go publishScheduled(body.ShowPrice, res)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Shows added successfully"})
}

// ListShows handles GET /shows and returns the distinct movies that have
// upcoming shows.
func (h *ShowHandler) ListShows(c echo.Context) error {
	movies, err := h.Query.ListUpcomingMovies(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "shows": movies})
}

// GetShowtimes handles GET /shows/:movieId and returns the movie plus its
// future shows grouped by date.
func (h *ShowHandler) GetShowtimes(c echo.Context) error {
	st, err := h.Query.GetShowtimes(c.Request().Context(), c.Param("movieId"))
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "movie": st.Movie, "dateTime": st.DateTimes})
}

// publishScheduled emits a shows.scheduled event for downstream
// consumers. Runs detached from the request.
func publishScheduled(price float64, res *service.AddShowResult) {
	times := make([]string, 0, len(res.Shows))
	for _, s := range res.Shows {
		times = append(times, s.ShowDateTime.UTC().Format(time.RFC3339))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = queue.PublishShowsScheduled(ctx, queue.ShowsScheduledEvent{
		MovieID:     res.Movie.ExternalID,
		MovieTitle:  res.Movie.Title,
		ShowCount:   len(res.Shows),
		Price:       price,
		ShowTimes:   times,
		ScheduledAt: time.Now().UTC().Format(time.RFC3339),
	})
}
