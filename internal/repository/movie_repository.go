package repository

import (
	"context"       // context for controlling query lifetime
	"database/sql"  // sql provides DB abstraction
	"encoding/json" // json (un)marshals the document-shaped columns
	"errors"        // errors for sentinel comparison
	"fmt"

	"github.com/cinebook/show-booking/internal/model"
)

// MovieRepo manages persistence for cached movie metadata records. The
// genres and cast attributes are stored as JSON columns and converted to
// and from their struct forms here, so callers only ever see model.Movie.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `external_id, title, overview, poster_path, backdrop_path,
    genres, cast_members, release_date, original_language, tagline, vote_average, runtime_minutes`

// FindByExternalID retrieves a movie by the metadata provider's
// identifier. It returns ErrMovieNotFound when no matching row exists.
func (r *MovieRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE external_id = ?`
	var (
		m        model.Movie
		genresJS []byte
		castJS   []byte
	)
	err := r.db.QueryRowContext(ctx, q, externalID).Scan(
		&m.ExternalID, &m.Title, &m.Overview, &m.PosterPath, &m.BackdropPath,
		&genresJS, &castJS, &m.ReleaseDate, &m.OriginalLanguage, &m.Tagline,
		&m.VoteAverage, &m.Runtime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if err := unmarshalMovieDocs(&m, genresJS, castJS); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new movie record. The caller is expected to have
// checked for existence first; a duplicate external_id surfaces as a
// database error from the primary key constraint.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	genresJS, err := json.Marshal(m.Genres)
	if err != nil {
		return fmt.Errorf("marshal genres: %w", err)
	}
	castJS, err := json.Marshal(m.Cast)
	if err != nil {
		return fmt.Errorf("marshal cast: %w", err)
	}
	const q = `INSERT INTO movies (` + movieColumns + `)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		m.ExternalID, m.Title, m.Overview, m.PosterPath, m.BackdropPath,
		genresJS, castJS, m.ReleaseDate, m.OriginalLanguage, m.Tagline,
		m.VoteAverage, m.Runtime,
	)
	return err
}

// unmarshalMovieDocs decodes the JSON columns into their struct fields.
// Empty slices are preferred over nils so JSON responses render [] and
// not null.
func unmarshalMovieDocs(m *model.Movie, genresJS, castJS []byte) error {
	m.Genres = []model.Genre{}
	if len(genresJS) > 0 {
		if err := json.Unmarshal(genresJS, &m.Genres); err != nil {
			return fmt.Errorf("unmarshal genres for movie %s: %w", m.ExternalID, err)
		}
	}
	m.Cast = []model.CastMember{}
	if len(castJS) > 0 {
		if err := json.Unmarshal(castJS, &m.Cast); err != nil {
			return fmt.Errorf("unmarshal cast for movie %s: %w", m.ExternalID, err)
		}
	}
	return nil
}
