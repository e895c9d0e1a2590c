package imdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// defaultTimeout bounds a single fetch, matching the transport-level
// classification below: an expired deadline surfaces as ErrRequestTimedOut.
const defaultTimeout = 30 * time.Second

// Client performs one-shot byte fetches against the catalog and poster
// endpoints. It never retries; retry is the caller's policy.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new catalog client.
func NewClient(logger zerolog.Logger, opts ...Option) *Client {
	options := clientOptions{
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Fetch issues exactly one GET against url and returns the body bytes.
// Failures are classified into the closed taxonomy in errors.go.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Fetched")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, classifyTransportError(err)
		}
		if len(body) == 0 {
			return nil, ErrEmptyData
		}
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrTooManyRequests
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, ErrServiceUnavailable
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnknownError, resp.StatusCode)
	}
}

// FetchPoster fetches the movie's poster bytes, preferring the resized
// variant URL.
func (c *Client) FetchPoster(ctx context.Context, movie Movie) ([]byte, error) {
	return c.Fetch(ctx, movie.ResizedPosterURL())
}

// classifyTransportError maps a transport-level failure onto the taxonomy:
// expired deadlines become ErrRequestTimedOut, everything else (DNS,
// refused connection, no route) becomes ErrNoInternetConnection.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrRequestTimedOut, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrRequestTimedOut, err)
	}
	return fmt.Errorf("%w: %v", ErrNoInternetConnection, err)
}
