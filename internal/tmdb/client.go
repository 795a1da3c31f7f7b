package tmdb

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cinebook/show-booking/internal/config"
)

// Client calls the metadata provider's JSON endpoints. The retry policy
// is injected through config.TMDBConfig rather than patched onto a shared
// transport, so tests can supply a fake server and short timings.
type Client struct {
	cfg  config.TMDBConfig
	http *http.Client
}

// New constructs a Client. The per-attempt timeout is enforced by the
// underlying http.Client, so a stalled attempt cannot eat the whole
// retry budget.
func New(cfg config.TMDBConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.AttemptTimeout},
	}
}

// retryableStatus reports whether an HTTP status warrants another
// attempt. Other 4xx statuses are business errors and retrying them
// would only repeat the same answer.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// providerError mirrors the provider's error body shape.
type providerError struct {
	StatusMessage string `json:"status_message"`
}

// Get fetches resourcePath relative to the configured base URL and
// returns the raw response body. Network failures and retryable statuses
// are retried up to MaxRetries times with a linear backoff (the delay
// before retry n is n*BackoffUnit). On exhaustion or a non-retryable
// failure the last error is returned as a *FetchError.
func (c *Client) Get(ctx context.Context, resourcePath string) ([]byte, error) {
	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + resourcePath

	var lastErr *FetchError
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.cfg.BackoffUnit
			log.Printf("tmdb: retrying %s in %s (attempt %d/%d)", resourcePath, delay, attempt, c.cfg.MaxRetries)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &FetchError{Kind: KindRequestSetup, Err: ctx.Err()}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &FetchError{Kind: KindRequestSetup, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			// The caller gave up; no point in further attempts.
			if ctx.Err() != nil {
				return nil, &FetchError{Kind: KindRequestSetup, Err: ctx.Err()}
			}
			lastErr = &FetchError{Kind: KindNoResponse, Err: err}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = &FetchError{Kind: KindNoResponse, Err: readErr}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		var pe providerError
		_ = json.Unmarshal(body, &pe)
		ferr := &FetchError{
			Kind:            KindErrorResponse,
			StatusCode:      resp.StatusCode,
			ProviderMessage: pe.StatusMessage,
		}
		if !retryableStatus(resp.StatusCode) {
			return nil, ferr
		}
		lastErr = ferr
	}
	return nil, lastErr
}

// get fetches resourcePath and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, resourcePath string, out any) error {
	body, err := c.Get(ctx, resourcePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Kind: KindNoResponse, Err: err}
	}
	return nil
}

// NowPlaying returns the provider's current now-playing page.
func (c *Client) NowPlaying(ctx context.Context) (*NowPlayingPage, error) {
	var page NowPlayingPage
	if err := c.get(ctx, "/movie/now_playing", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// MovieDetails returns the full detail record for one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID string) (*MovieDetails, error) {
	var d MovieDetails
	if err := c.get(ctx, "/movie/"+movieID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// MovieCredits returns the credits record (cast list) for one movie.
func (c *Client) MovieCredits(ctx context.Context, movieID string) (*Credits, error) {
	var cr Credits
	if err := c.get(ctx, "/movie/"+movieID+"/credits", &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}
