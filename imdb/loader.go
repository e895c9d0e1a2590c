package imdb

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Default catalog endpoint. The API key is appended to the base URL as a
// path segment, the way the tv-api Top-250 endpoint expects it.
const (
	DefaultCatalogURL = "https://tv-api.com/en/API/Top250Movies/"
	DefaultAPIKey     = "k_zcuw1ytf"
)

// Fetcher is the transport dependency of the Loader. *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Loader fetches and decodes the movie catalog from a fixed endpoint.
type Loader struct {
	fetcher  Fetcher
	endpoint string
	logger   zerolog.Logger
}

// NewLoader creates a loader for the given base URL and API key.
func NewLoader(fetcher Fetcher, baseURL, apiKey string, logger zerolog.Logger) *Loader {
	return &Loader{
		fetcher:  fetcher,
		endpoint: baseURL + apiKey,
		logger:   logger,
	}
}

// Load fetches and decodes the catalog. Transport failures pass through
// from the fetcher unchanged; a decode failure is wrapped in *DecodeError;
// a decoded catalog with no items becomes *EmptyCatalogError carrying the
// server's message.
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	body, err := l.fetcher.Fetch(ctx, l.endpoint)
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, &DecodeError{Err: err}
	}

	if len(catalog.Items) == 0 {
		return nil, &EmptyCatalogError{Message: catalog.ErrorMessage}
	}

	l.logger.Debug().Int("count", len(catalog.Items)).Msg("Loaded movie catalog")
	return &catalog, nil
}
