// Package external talks to the third-party providers the travel planner
// aggregates: current weather, points of interest and city geocoding.
// Every provider gets one attempt bounded by its own timeout; failures surface
// as domain.ErrExternalUnavailable.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SimonMage/TravelSobolev/internal/domain"
	"github.com/SimonMage/TravelSobolev/internal/metrics"
)

// Provider names, used as the metrics label and in log lines.
const (
	providerWeather   = "weather"
	providerPlaces    = "places"
	providerGeocoding = "geocoding"
)

// maxResponseBytes caps how much of a provider body is read.
const maxResponseBytes = 4 << 20

// ProviderConfig is what the client needs to reach one provider.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Config groups the three providers.
type Config struct {
	Weather   ProviderConfig
	Places    ProviderConfig
	Geocoding ProviderConfig
}

// Client is safe for concurrent use.
type Client struct {
	weather   provider
	places    provider
	geocoding provider
	logger    *slog.Logger
}

// NewClient builds a Client. Each provider gets its own http.Client so the
// timeouts stay independent.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		weather:   newProvider(providerWeather, cfg.Weather),
		places:    newProvider(providerPlaces, cfg.Places),
		geocoding: newProvider(providerGeocoding, cfg.Geocoding),
		logger:    logger,
	}
}

type provider struct {
	name    string
	baseURL string
	apiKey  string
	http    *http.Client
}

func newProvider(name string, cfg ProviderConfig) provider {
	return provider{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// getJSON issues GET baseURL+path?query and decodes a 2xx body into out.
// Errors never include the request URL, which carries the API key.
func (p provider) getJSON(ctx context.Context, path string, query url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ExternalRequestsTotal.WithLabelValues(p.name, outcome).Inc()
		metrics.ExternalRequestDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %s: build request: %w", domain.ErrExternalUnavailable, p.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: %s: %w", domain.ErrExternalUnavailable, p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("%w: %s returned status %d", domain.ErrExternalUnavailable, p.name, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %w", domain.ErrExternalUnavailable, p.name, err)
	}
	return nil
}
