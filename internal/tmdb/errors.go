// Package tmdb wraps the external movie-metadata provider's HTTP API with
// a per-attempt timeout and a bounded retry policy. The rest of the
// service talks to the provider only through this package.
package tmdb

import "fmt"

// ErrorKind classifies a FetchError so callers can word user-facing
// messages without inspecting transport details.
type ErrorKind string

const (
	// KindErrorResponse: the provider answered with an error status.
	KindErrorResponse ErrorKind = "error_response"
	// KindNoResponse: the request went out but nothing came back
	// (timeout, connection reset, DNS failure).
	KindNoResponse ErrorKind = "no_response"
	// KindRequestSetup: the request could not be constructed or sent at all.
	KindRequestSetup ErrorKind = "request_setup"
)

// FetchError is the single normalized error returned by the client after
// retries are exhausted or a non-retryable failure occurs. StatusCode and
// ProviderMessage are populated only for KindErrorResponse.
type FetchError struct {
	Kind            ErrorKind
	StatusCode      int
	ProviderMessage string
	Err             error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindErrorResponse:
		if e.ProviderMessage != "" {
			return fmt.Sprintf("tmdb: provider returned %d: %s", e.StatusCode, e.ProviderMessage)
		}
		return fmt.Sprintf("tmdb: provider returned %d", e.StatusCode)
	case KindNoResponse:
		return fmt.Sprintf("tmdb: no response from provider: %v", e.Err)
	default:
		return fmt.Sprintf("tmdb: request failed before send: %v", e.Err)
	}
}

// Unwrap exposes the underlying transport error, when there is one.
func (e *FetchError) Unwrap() error { return e.Err }
