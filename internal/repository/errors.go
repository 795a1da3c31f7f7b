// Package repository contains the data access layer for movies and shows.
// Sentinel errors defined here let higher layers distinguish "record does
// not exist" from infrastructure failures without string matching.
package repository

import "errors"

// ErrMovieNotFound indicates that no movie with the requested external
// identifier exists locally. The ingestion flow treats this as the signal
// to fetch the movie from the metadata provider.
var ErrMovieNotFound = errors.New("movie not found")
