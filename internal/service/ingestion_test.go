package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinebook/show-booking/internal/model"
	"github.com/cinebook/show-booking/internal/repository"
	"github.com/cinebook/show-booking/internal/tmdb"
)

// mockMovieRepo is a testify mock of MovieRepository.
type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Movie, error) {
	args := m.Called(ctx, externalID)
	var mv *model.Movie
	if v := args.Get(0); v != nil {
		mv = v.(*model.Movie)
	}
	return mv, args.Error(1)
}

func (m *mockMovieRepo) Create(ctx context.Context, mv *model.Movie) error {
	return m.Called(ctx, mv).Error(0)
}

// mockShowRepo is a testify mock of ShowRepository.
type mockShowRepo struct {
	mock.Mock
}

func (m *mockShowRepo) CreateBulk(ctx context.Context, shows []model.Show) error {
	return m.Called(ctx, shows).Error(0)
}

func (m *mockShowRepo) ListUpcoming(ctx context.Context, from time.Time) ([]model.ShowWithMovie, error) {
	args := m.Called(ctx, from)
	var res []model.ShowWithMovie
	if v := args.Get(0); v != nil {
		res = v.([]model.ShowWithMovie)
	}
	return res, args.Error(1)
}

func (m *mockShowRepo) ListUpcomingByMovie(ctx context.Context, movieID string, from time.Time) ([]model.Show, error) {
	args := m.Called(ctx, movieID, from)
	var res []model.Show
	if v := args.Get(0); v != nil {
		res = v.([]model.Show)
	}
	return res, args.Error(1)
}

// mockMetadata is a testify mock of MetadataClient.
type mockMetadata struct {
	mock.Mock
}

func (m *mockMetadata) MovieDetails(ctx context.Context, movieID string) (*tmdb.MovieDetails, error) {
	args := m.Called(ctx, movieID)
	var d *tmdb.MovieDetails
	if v := args.Get(0); v != nil {
		d = v.(*tmdb.MovieDetails)
	}
	return d, args.Error(1)
}

func (m *mockMetadata) MovieCredits(ctx context.Context, movieID string) (*tmdb.Credits, error) {
	args := m.Called(ctx, movieID)
	var cr *tmdb.Credits
	if v := args.Get(0); v != nil {
		cr = v.(*tmdb.Credits)
	}
	return cr, args.Error(1)
}

func newIngestionFixture() (*IngestionService, *mockMovieRepo, *mockShowRepo, *mockMetadata) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	meta := &mockMetadata{}
	return NewIngestionService(movies, shows, meta), movies, shows, meta
}

func TestAddShowRejectsMissingInput(t *testing.T) {
	cases := []struct {
		name    string
		movieID string
		input   []model.ShowInput
		price   float64
	}{
		{"missing movie id", "", []model.ShowInput{{Date: "2024-05-01", Times: []string{"10:00"}}}, 200},
		{"missing shows input", "tt1", nil, 200},
		{"missing price", "tt1", []model.ShowInput{{Date: "2024-05-01", Times: []string{"10:00"}}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, movies, shows, meta := newIngestionFixture()

			_, err := svc.AddShow(context.Background(), tc.movieID, tc.input, tc.price)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			movies.AssertNotCalled(t, "FindByExternalID", mock.Anything, mock.Anything)
			shows.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
			meta.AssertNotCalled(t, "MovieDetails", mock.Anything, mock.Anything)
		})
	}
}

func TestAddShowExistingMovieSkipsProvider(t *testing.T) {
	svc, movies, shows, meta := newIngestionFixture()

	movies.On("FindByExternalID", mock.Anything, "tt1").
		Return(&model.Movie{ExternalID: "tt1", Title: "Cached"}, nil)

	var created []model.Show
	shows.On("CreateBulk", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).([]model.Show) }).
		Return(nil)

	input := []model.ShowInput{
		{Date: "2024-05-01", Times: []string{"10:00", "14:00"}},
		{Date: "2024-05-02", Times: []string{"18:30"}},
	}
	res, err := svc.AddShow(context.Background(), "tt1", input, 250)
	require.NoError(t, err)

	// One show per (date, time) pair, in input order.
	require.Len(t, created, 3)
	assert.Equal(t, created, res.Shows)
	wantTimes := []string{"2024-05-01T10:00:00Z", "2024-05-01T14:00:00Z", "2024-05-02T18:30:00Z"}
	for i, s := range created {
		assert.Equal(t, "tt1", s.MovieID)
		assert.Equal(t, 250.0, s.Price)
		assert.Empty(t, s.OccupiedSeats)
		assert.NotNil(t, s.OccupiedSeats)
		assert.Equal(t, wantTimes[i], s.ShowDateTime.UTC().Format(time.RFC3339))
	}

	meta.AssertNotCalled(t, "MovieDetails", mock.Anything, mock.Anything)
	meta.AssertNotCalled(t, "MovieCredits", mock.Anything, mock.Anything)
	movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddShowFetchesAndPersistsNewMovie(t *testing.T) {
	svc, movies, shows, meta := newIngestionFixture()

	movies.On("FindByExternalID", mock.Anything, "tt1").Return(nil, repository.ErrMovieNotFound)

	// Twelve credits entries; only the first ten may be kept.
	cast := make([]tmdb.CastCredit, 12)
	for i := range cast {
		cast[i] = tmdb.CastCredit{ID: i, Name: fmt.Sprintf("Actor %d", i), Order: i}
	}
	meta.On("MovieDetails", mock.Anything, "tt1").Return(&tmdb.MovieDetails{
		ID:               1,
		Title:            "Fetched Movie",
		Overview:         "An overview.",
		Genres:           []tmdb.Genre{{ID: 18, Name: "Drama"}},
		ReleaseDate:      "2024-01-01",
		OriginalLanguage: "en",
		VoteAverage:      7.5,
		Runtime:          120,
	}, nil)
	meta.On("MovieCredits", mock.Anything, "tt1").Return(&tmdb.Credits{ID: 1, Cast: cast}, nil)

	var saved *model.Movie
	movies.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Movie) }).
		Return(nil)

	var created []model.Show
	shows.On("CreateBulk", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).([]model.Show) }).
		Return(nil)

	input := []model.ShowInput{{Date: "2024-05-01", Times: []string{"10:00", "14:00"}}}
	res, err := svc.AddShow(context.Background(), "tt1", input, 200)
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "tt1", saved.ExternalID)
	assert.Equal(t, "Fetched Movie", saved.Title)
	assert.Len(t, saved.Cast, model.MaxCastEntries)
	assert.Equal(t, "Actor 0", saved.Cast[0].Name)
	assert.Equal(t, "", saved.Tagline)
	assert.Equal(t, saved, res.Movie)

	require.Len(t, created, 2)
	assert.Equal(t, "2024-05-01T10:00:00Z", created[0].ShowDateTime.UTC().Format(time.RFC3339))
	assert.Equal(t, "2024-05-01T14:00:00Z", created[1].ShowDateTime.UTC().Format(time.RFC3339))
	assert.Equal(t, 200.0, created[0].Price)
	assert.Empty(t, created[0].OccupiedSeats)
}

func TestAddShowProviderFailureCreatesNothing(t *testing.T) {
	svc, movies, shows, meta := newIngestionFixture()

	movies.On("FindByExternalID", mock.Anything, "tt1").Return(nil, repository.ErrMovieNotFound)
	meta.On("MovieDetails", mock.Anything, "tt1").Return(&tmdb.MovieDetails{Title: "Fetched"}, nil).Maybe()
	meta.On("MovieCredits", mock.Anything, "tt1").Return(nil, &tmdb.FetchError{
		Kind:       tmdb.KindErrorResponse,
		StatusCode: 404,
	})

	input := []model.ShowInput{{Date: "2024-05-01", Times: []string{"10:00"}}}
	_, err := svc.AddShow(context.Background(), "tt1", input, 200)

	var uerr *UpstreamError
	require.ErrorAs(t, err, &uerr)
	var ferr *tmdb.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 404, ferr.StatusCode)

	movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	shows.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
}

func TestAddShowRejectsMalformedTime(t *testing.T) {
	svc, movies, shows, _ := newIngestionFixture()

	movies.On("FindByExternalID", mock.Anything, "tt1").
		Return(&model.Movie{ExternalID: "tt1"}, nil)

	input := []model.ShowInput{{Date: "2024-05-01", Times: []string{"25:99"}}}
	_, err := svc.AddShow(context.Background(), "tt1", input, 200)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	shows.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
}

func TestAddShowPersistenceFailureSurfaces(t *testing.T) {
	svc, movies, shows, _ := newIngestionFixture()

	movies.On("FindByExternalID", mock.Anything, "tt1").
		Return(&model.Movie{ExternalID: "tt1"}, nil)
	shows.On("CreateBulk", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	input := []model.ShowInput{{Date: "2024-05-01", Times: []string{"10:00"}}}
	_, err := svc.AddShow(context.Background(), "tt1", input, 200)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "disk full")
}
