package repository

import (
	"context"       // context for controlling query lifetime
	"database/sql"  // sql provides DB abstraction
	"encoding/json" // json (un)marshals the occupied seats column
	"fmt"
	"time" // time bounds the upcoming-show queries

	"github.com/cinebook/show-booking/internal/model"
)

// ShowRepo manages persistence for show records. Shows are insert-only in
// this service: they are created in bulk during ingestion and read back
// by the browse queries, never updated or deleted.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// CreateBulk inserts all given shows in one statement. Each row carries
// its own JSON-encoded occupied seats map (always empty at creation).
// Generated IDs are assigned back to the slice elements in insertion
// order, relying on the connection-local LAST_INSERT_ID of the batch.
func (r *ShowRepo) CreateBulk(ctx context.Context, shows []model.Show) error {
	if len(shows) == 0 {
		return nil
	}
	// Build the INSERT with placeholders for each show. Each row
	// requires four values; created_at uses the DB default.
	query := `INSERT INTO shows (movie_external_id, show_datetime, price, occupied_seats) VALUES `
	args := make([]interface{}, 0, len(shows)*4)
	for i, s := range shows {
		seats := s.OccupiedSeats
		if seats == nil {
			seats = map[string]string{}
		}
		seatsJS, err := json.Marshal(seats)
		if err != nil {
			return fmt.Errorf("marshal occupied seats: %w", err)
		}
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, s.MovieID, s.ShowDateTime.UTC(), s.Price, seatsJS)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	// MySQL reports the first generated ID of a multi-row insert; the
	// rest follow consecutively within the batch.
	first, err := res.LastInsertId()
	if err != nil {
		return nil
	}
	for i := range shows {
		shows[i].ID = uint64(first) + uint64(i)
	}
	return nil
}

const showColumns = `s.id, s.movie_external_id, s.show_datetime, s.price, s.occupied_seats`

// ListUpcoming returns every show starting at or after the given instant,
// each populated with its movie record, ordered by showtime ascending.
func (r *ShowRepo) ListUpcoming(ctx context.Context, from time.Time) ([]model.ShowWithMovie, error) {
	const q = `SELECT ` + showColumns + `, ` + movieColumns + `
               FROM shows s
               JOIN movies ON movies.external_id = s.movie_external_id
               WHERE s.show_datetime >= ?
               ORDER BY s.show_datetime ASC`
	rows, err := r.db.QueryContext(ctx, q, from.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.ShowWithMovie
	for rows.Next() {
		var (
			sm       model.ShowWithMovie
			seatsJS  []byte
			genresJS []byte
			castJS   []byte
		)
		if err := rows.Scan(
			&sm.ID, &sm.MovieID, &sm.ShowDateTime, &sm.Price, &seatsJS,
			&sm.Movie.ExternalID, &sm.Movie.Title, &sm.Movie.Overview,
			&sm.Movie.PosterPath, &sm.Movie.BackdropPath, &genresJS, &castJS,
			&sm.Movie.ReleaseDate, &sm.Movie.OriginalLanguage, &sm.Movie.Tagline,
			&sm.Movie.VoteAverage, &sm.Movie.Runtime,
		); err != nil {
			return nil, err
		}
		if err := unmarshalSeats(&sm.Show, seatsJS); err != nil {
			return nil, err
		}
		if err := unmarshalMovieDocs(&sm.Movie, genresJS, castJS); err != nil {
			return nil, err
		}
		result = append(result, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListUpcomingByMovie returns the future shows of one movie. No ordering
// is applied; the caller groups rows by date and keeps whatever
// within-date order the storage layer produces.
func (r *ShowRepo) ListUpcomingByMovie(ctx context.Context, movieID string, from time.Time) ([]model.Show, error) {
	const q = `SELECT ` + showColumns + `
               FROM shows s
               WHERE s.movie_external_id = ? AND s.show_datetime >= ?`
	rows, err := r.db.QueryContext(ctx, q, movieID, from.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		var (
			s       model.Show
			seatsJS []byte
		)
		if err := rows.Scan(&s.ID, &s.MovieID, &s.ShowDateTime, &s.Price, &seatsJS); err != nil {
			return nil, err
		}
		if err := unmarshalSeats(&s, seatsJS); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// unmarshalSeats decodes the occupied seats JSON column, defaulting to an
// empty map so responses always render an object.
func unmarshalSeats(s *model.Show, seatsJS []byte) error {
	s.OccupiedSeats = map[string]string{}
	if len(seatsJS) > 0 {
		if err := json.Unmarshal(seatsJS, &s.OccupiedSeats); err != nil {
			return fmt.Errorf("unmarshal occupied seats for show %d: %w", s.ID, err)
		}
	}
	return nil
}
