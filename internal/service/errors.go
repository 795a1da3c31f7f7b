// Package service implements the show-ingestion and browse logic on top
// of the repositories and the metadata client. Failures are classified
// into three categories that map directly onto the HTTP contract:
// ValidationError (user-correctable, 400), UpstreamError (metadata
// provider failure) and PersistenceError (storage failure).
package service

import "fmt"

// ValidationError reports missing or malformed caller input. The message
// is safe to return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError reports a metadata provider failure. It wraps the
// client's *tmdb.FetchError, so callers that need the status code or the
// provider-supplied message can unwrap it.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// PersistenceError reports a storage layer failure, passing the
// underlying message through.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error { return e.Err }
