package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinebook/show-booking/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func showAt(id uint64, movieID string, ts string) model.Show {
	dt, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.Show{ID: id, MovieID: movieID, ShowDateTime: dt, Price: 100, OccupiedSeats: map[string]string{}}
}

func TestListUpcomingMoviesDeduplicatesByID(t *testing.T) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	svc := NewQueryService(movies, shows)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	// Three future shows over two movies, already sorted by showtime.
	upcoming := []model.ShowWithMovie{
		{Show: showAt(1, "tt1", "2024-05-01T10:00:00Z"), Movie: model.Movie{ExternalID: "tt1", Title: "First"}},
		{Show: showAt(2, "tt2", "2024-05-01T12:00:00Z"), Movie: model.Movie{ExternalID: "tt2", Title: "Second"}},
		{Show: showAt(3, "tt1", "2024-05-02T10:00:00Z"), Movie: model.Movie{ExternalID: "tt1", Title: "First"}},
	}
	shows.On("ListUpcoming", mock.Anything, now).Return(upcoming, nil)

	got, err := svc.ListUpcomingMovies(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "tt1", got[0].ExternalID) // earliest upcoming show first
	assert.Equal(t, "tt2", got[1].ExternalID)
}

func TestListUpcomingMoviesEmpty(t *testing.T) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	svc := NewQueryService(movies, shows)
	svc.now = fixedClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	shows.On("ListUpcoming", mock.Anything, mock.Anything).Return([]model.ShowWithMovie{}, nil)

	got, err := svc.ListUpcomingMovies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListUpcomingMoviesStorageFailure(t *testing.T) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	svc := NewQueryService(movies, shows)

	shows.On("ListUpcoming", mock.Anything, mock.Anything).Return(nil, errors.New("connection lost"))

	_, err := svc.ListUpcomingMovies(context.Background())
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestGetShowtimesGroupsByUTCDate(t *testing.T) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	svc := NewQueryService(movies, shows)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	future := []model.Show{
		showAt(1, "tt1", "2024-05-01T10:00:00Z"),
		showAt(2, "tt1", "2024-05-02T18:30:00Z"),
		showAt(3, "tt1", "2024-05-01T14:00:00Z"),
	}
	shows.On("ListUpcomingByMovie", mock.Anything, "tt1", now).Return(future, nil)
	movies.On("FindByExternalID", mock.Anything, "tt1").
		Return(&model.Movie{ExternalID: "tt1", Title: "Grouped"}, nil)

	st, err := svc.GetShowtimes(context.Background(), "tt1")
	require.NoError(t, err)

	assert.Equal(t, "Grouped", st.Movie.Title)
	require.Len(t, st.DateTimes, 2)

	// Every show lands in exactly one bucket; within-date order follows
	// the storage order, which is not chronological here.
	require.Len(t, st.DateTimes["2024-05-01"], 2)
	assert.Equal(t, ShowtimeEntry{Time: "10:00", ShowID: 1}, st.DateTimes["2024-05-01"][0])
	assert.Equal(t, ShowtimeEntry{Time: "14:00", ShowID: 3}, st.DateTimes["2024-05-01"][1])
	require.Len(t, st.DateTimes["2024-05-02"], 1)
	assert.Equal(t, ShowtimeEntry{Time: "18:30", ShowID: 2}, st.DateTimes["2024-05-02"][0])
}

func TestGetShowtimesRequiresMovieID(t *testing.T) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	svc := NewQueryService(movies, shows)

	_, err := svc.GetShowtimes(context.Background(), "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	shows.AssertNotCalled(t, "ListUpcomingByMovie", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetShowtimesUnknownMovie(t *testing.T) {
	movies := &mockMovieRepo{}
	shows := &mockShowRepo{}
	svc := NewQueryService(movies, shows)
	svc.now = fixedClock(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	shows.On("ListUpcomingByMovie", mock.Anything, "ttX", mock.Anything).Return([]model.Show{}, nil)
	movies.On("FindByExternalID", mock.Anything, "ttX").Return(nil, errors.New("movie not found"))

	_, err := svc.GetShowtimes(context.Background(), "ttX")
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "movie not found")
}
