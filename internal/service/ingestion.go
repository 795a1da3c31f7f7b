package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cinebook/show-booking/internal/model"
	"github.com/cinebook/show-booking/internal/repository"
	"github.com/cinebook/show-booking/internal/tmdb"
)

// MovieRepository is the persistence surface the services need for
// movies. *repository.MovieRepo satisfies it; tests substitute mocks.
type MovieRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
}

// ShowRepository is the persistence surface the services need for shows.
type ShowRepository interface {
	CreateBulk(ctx context.Context, shows []model.Show) error
	ListUpcoming(ctx context.Context, from time.Time) ([]model.ShowWithMovie, error)
	ListUpcomingByMovie(ctx context.Context, movieID string, from time.Time) ([]model.Show, error)
}

// MetadataClient is the slice of the tmdb client used by ingestion.
type MetadataClient interface {
	MovieDetails(ctx context.Context, movieID string) (*tmdb.MovieDetails, error)
	MovieCredits(ctx context.Context, movieID string) (*tmdb.Credits, error)
}

// IngestionService materializes show records: it makes sure the referenced
// movie exists locally (fetching it from the metadata provider on first
// sight) and expands the client's date/time matrix into persisted shows.
type IngestionService struct {
	movies MovieRepository
	shows  ShowRepository
	meta   MetadataClient
}

// NewIngestionService constructs an IngestionService and panics if any
// dependency is nil.
func NewIngestionService(movies MovieRepository, shows ShowRepository, meta MetadataClient) *IngestionService {
	if movies == nil || shows == nil || meta == nil {
		panic("nil dependency passed to NewIngestionService")
	}
	return &IngestionService{movies: movies, shows: shows, meta: meta}
}

// AddShowResult reports what an ingestion request produced: the movie the
// shows reference (freshly created or already cached) and the created
// shows in expansion order.
type AddShowResult struct {
	Movie *model.Movie
	Shows []model.Show
}

// AddShow ensures the movie identified by movieID exists locally, then
// creates one show per (date, time) pair of showsInput, all priced at
// showPrice. Expansion follows input order: dates in given order, times
// within a date in given order. Failures come back as *ValidationError,
// *UpstreamError or *PersistenceError.
//
// The existence check and the create are not atomic: two concurrent
// requests for a new movie can both observe absence and race on creation.
// The movies primary key makes the loser fail loudly instead of
// duplicating the record.
func (s *IngestionService) AddShow(ctx context.Context, movieID string, showsInput []model.ShowInput, showPrice float64) (*AddShowResult, error) {
	if movieID == "" || len(showsInput) == 0 || showPrice == 0 {
		return nil, &ValidationError{Message: "movieId, showsInput and showPrice are required"}
	}

	movie, err := s.ensureMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	shows, err := expandShows(movieID, showsInput, showPrice)
	if err != nil {
		return nil, err
	}
	if len(shows) > 0 {
		if err := s.shows.CreateBulk(ctx, shows); err != nil {
			return nil, &PersistenceError{Message: "failed to save shows", Err: err}
		}
	}
	return &AddShowResult{Movie: movie, Shows: shows}, nil
}

// ensureMovie returns the locally cached movie, creating it from provider
// data when it is absent. Details and credits are fetched concurrently;
// the first failure cancels the other fetch and no partial movie is
// written.
func (s *IngestionService) ensureMovie(ctx context.Context, movieID string) (*model.Movie, error) {
	m, err := s.movies.FindByExternalID(ctx, movieID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrMovieNotFound) {
		return nil, &PersistenceError{Message: "failed to look up movie", Err: err}
	}

	var (
		details *tmdb.MovieDetails
		credits *tmdb.Credits
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = s.meta.MovieDetails(gctx, movieID)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = s.meta.MovieCredits(gctx, movieID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, &UpstreamError{Message: "failed to fetch movie from provider", Err: err}
	}

	movie := buildMovie(movieID, details, credits)
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, &PersistenceError{Message: "failed to save movie", Err: err}
	}
	return movie, nil
}

// buildMovie maps provider payloads onto the local movie record. The cast
// list is truncated to the first MaxCastEntries credits entries and the
// tagline defaults to the empty string when the provider omits it, which
// the struct zero value already gives us.
func buildMovie(movieID string, details *tmdb.MovieDetails, credits *tmdb.Credits) *model.Movie {
	genres := make([]model.Genre, 0, len(details.Genres))
	for _, g := range details.Genres {
		genres = append(genres, model.Genre{ID: g.ID, Name: g.Name})
	}
	castList := credits.Cast
	if len(castList) > model.MaxCastEntries {
		castList = castList[:model.MaxCastEntries]
	}
	cast := make([]model.CastMember, 0, len(castList))
	for _, c := range castList {
		cast = append(cast, model.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
		})
	}
	return &model.Movie{
		ExternalID:       movieID,
		Title:            details.Title,
		Overview:         details.Overview,
		PosterPath:       details.PosterPath,
		BackdropPath:     details.BackdropPath,
		Genres:           genres,
		Cast:             cast,
		ReleaseDate:      details.ReleaseDate,
		OriginalLanguage: details.OriginalLanguage,
		Tagline:          details.Tagline,
		VoteAverage:      details.VoteAverage,
		Runtime:          details.Runtime,
	}
}

// expandShows turns the date/time matrix into one show per pair. A
// malformed date or time string aborts the whole expansion with a
// ValidationError rather than persisting an invalid timestamp.
func expandShows(movieID string, showsInput []model.ShowInput, showPrice float64) ([]model.Show, error) {
	var shows []model.Show
	for _, in := range showsInput {
		for _, tod := range in.Times {
			dt, err := model.CombineDateTime(in.Date, tod)
			if err != nil {
				return nil, &ValidationError{Message: err.Error()}
			}
			shows = append(shows, model.Show{
				MovieID:       movieID,
				ShowDateTime:  dt,
				Price:         showPrice,
				OccupiedSeats: map[string]string{},
			})
		}
	}
	return shows, nil
}
