// Package portal is a client for the membership portal, used to pull
// attendance figures and recommendation-list exports. Calls are rate limited
// and never retried; a failed pull is surfaced to the caller and tried again
// on the next sync.
package portal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/errors"
	"github.com/stakemetrics/stakemetrics-server/internal/ratelimit"
)

const (
	// One request per endpoint every few seconds keeps us well under the
	// portal's undocumented limits.
	defaultRPS   = 2.0
	defaultBurst = 2

	defaultTimeout = 20 * time.Second
)

// Config holds portal client settings.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	RPS     float64
}

// Client is a rate-limited portal API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	baseURL string
	token   string
	logger  *slog.Logger
}

// New creates a portal client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS == 0 {
		cfg.RPS = defaultRPS
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.New(cfg.RPS, defaultBurst),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		logger:  logger.With("component", "portal"),
	}
}

// doRequest executes one rate-limited GET against the portal.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, path); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "StakeMetrics/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("portal request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeUpstream, "portal request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeUpstream, "read portal response")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFoundf("portal resource %s not found", path)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, errors.Upstream("portal rejected credentials")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Upstream("portal rate limit exceeded")
	default:
		return nil, errors.Upstreamf("portal returned status %d", resp.StatusCode)
	}
}
