package model

// Genre is one genre record as delivered by the metadata provider. The
// provider's numeric genre ID is kept so that clients can build filter
// links without another lookup.
type Genre struct {
	ID   int    `json:"id"`   // provider genre identifier
	Name string `json:"name"` // human-readable genre name
}

// CastMember is a single top-billed cast entry. Movies store at most the
// first ten entries of the provider's credits list.
type CastMember struct {
	ID          int    `json:"id"`           // provider person identifier
	Name        string `json:"name"`         // actor name
	Character   string `json:"character"`    // character played
	ProfilePath string `json:"profile_path"` // relative path to the profile image
}

// Movie is a locally cached metadata record for one film, keyed by the
// external provider's movie identifier. A movie is created at most once
// per identifier; its attributes are a snapshot of the provider data at
// ingestion time and are never refreshed afterwards.
//
// Fields:
//  ExternalID       – the provider's movie identifier (primary key here).
//  Title            – display title.
//  Overview         – synopsis text.
//  PosterPath       – relative path to the poster image.
//  BackdropPath     – relative path to the backdrop image.
//  Genres           – genre records from the provider.
//  Cast             – up to ten top-billed cast entries, in billing order.
//  ReleaseDate      – ISO release date ("2006-01-02").
//  OriginalLanguage – ISO 639-1 language code.
//  Tagline          – marketing tagline; empty string when the provider
//                     supplies none.
//  VoteAverage      – provider's average vote score.
//  Runtime          – runtime in minutes.
type Movie struct {
	ExternalID       string       `json:"movieId"`          // movies.external_id
	Title            string       `json:"title"`            // movies.title
	Overview         string       `json:"overview"`         // movies.overview
	PosterPath       string       `json:"posterPath"`       // movies.poster_path
	BackdropPath     string       `json:"backdropPath"`     // movies.backdrop_path
	Genres           []Genre      `json:"genres"`           // movies.genres (JSON column)
	Cast             []CastMember `json:"casts"`            // movies.cast_members (JSON column)
	ReleaseDate      string       `json:"releaseDate"`      // movies.release_date
	OriginalLanguage string       `json:"originalLanguage"` // movies.original_language
	Tagline          string       `json:"tagline"`          // movies.tagline
	VoteAverage      float64      `json:"voteAverage"`      // movies.vote_average
	Runtime          int          `json:"runtime"`          // movies.runtime_minutes
}

// MaxCastEntries caps how many credits entries are persisted per movie.
const MaxCastEntries = 10
