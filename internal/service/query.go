package service

import (
	"context"
	"time"

	"github.com/cinebook/show-booking/internal/model"
)

// ShowtimeEntry is one bookable screening slot within a date bucket.
type ShowtimeEntry struct {
	Time   string `json:"time"`   // time of day, "15:04"
	ShowID uint64 `json:"showId"` // show to book against
}

// Showtimes is the per-movie schedule: the movie record plus its future
// shows grouped by the UTC date portion of their timestamp.
type Showtimes struct {
	Movie     model.Movie                `json:"movie"`
	DateTimes map[string][]ShowtimeEntry `json:"dateTime"`
}

// QueryService is the read side: it lists upcoming movies and per-movie
// showtimes from the repositories. now is injectable so tests can pin the
// clock.
type QueryService struct {
	movies MovieRepository
	shows  ShowRepository
	now    func() time.Time
}

// NewQueryService constructs a QueryService using the wall clock.
func NewQueryService(movies MovieRepository, shows ShowRepository) *QueryService {
	if movies == nil || shows == nil {
		panic("nil dependency passed to NewQueryService")
	}
	return &QueryService{movies: movies, shows: shows, now: time.Now}
}

// ListUpcomingMovies returns the distinct movies that have at least one
// show starting now or later. Shows arrive sorted by showtime ascending
// and are reduced to movies by external identifier, keeping the first
// occurrence, so the result is ordered by each movie's earliest upcoming
// show. A movie with no future shows never appears.
func (s *QueryService) ListUpcomingMovies(ctx context.Context) ([]model.Movie, error) {
	upcoming, err := s.shows.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, &PersistenceError{Message: "failed to load upcoming shows", Err: err}
	}
	seen := make(map[string]bool, len(upcoming))
	movies := make([]model.Movie, 0, len(upcoming))
	for _, sm := range upcoming {
		if seen[sm.Movie.ExternalID] {
			continue
		}
		seen[sm.Movie.ExternalID] = true
		movies = append(movies, sm.Movie)
	}
	return movies, nil
}

// GetShowtimes returns the movie record and its future shows grouped by
// the UTC date ("2006-01-02") of their timestamp. Within a date bucket
// the entries keep the order the storage layer returned; this path does
// not sort.
func (s *QueryService) GetShowtimes(ctx context.Context, movieID string) (*Showtimes, error) {
	if movieID == "" {
		return nil, &ValidationError{Message: "movieId is required"}
	}
	shows, err := s.shows.ListUpcomingByMovie(ctx, movieID, s.now())
	if err != nil {
		return nil, &PersistenceError{Message: "failed to load shows", Err: err}
	}
	movie, err := s.movies.FindByExternalID(ctx, movieID)
	if err != nil {
		return nil, &PersistenceError{Message: "failed to load movie", Err: err}
	}
	buckets := make(map[string][]ShowtimeEntry)
	for _, sh := range shows {
		dt := sh.ShowDateTime.UTC()
		date := dt.Format("2006-01-02")
		buckets[date] = append(buckets[date], ShowtimeEntry{
			Time:   dt.Format("15:04"),
			ShowID: sh.ID,
		})
	}
	return &Showtimes{Movie: *movie, DateTimes: buckets}, nil
}
