// Package web fetches raw HTML pages over HTTP with polite rate limiting.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultBurstSize         = 3
	DefaultUserAgent         = "acadia-cli/1.0 (+https://github.com/acadia-labs/acadia-cli)"

	// maxBodySize caps a fetched page at 16 MiB to bound memory use.
	maxBodySize = 16 << 20
)

// Config holds fetcher configuration.
type Config struct {
	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained rate limit across all sources.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size.
	BurstSize int

	// UserAgent overrides the request User-Agent header.
	UserAgent string
}

// Fetcher retrieves pages over HTTP, one at a time, rate limited with a
// token bucket so repeated runs stay polite to the source hosts.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New creates a fetcher with the given configuration.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultBurstSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		userAgent: cfg.UserAgent,
	}
}

// Fetch retrieves one page. Non-2xx responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	return body, nil
}
