package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/veridex/internal/cache"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/util"
)

// Client is the shared HTTP client used by all source adapters. It enforces
// the request timeout, per-host rate limits, robots.txt politeness and the
// response size cap, and optionally caches raw response bodies so repeated
// claims don't hammer the public APIs.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *hostLimiter
	robots     *util.RobotsChecker // nil when politeness disabled
	store      cache.Cache         // nil when caching disabled
	cacheTTL   time.Duration
}

// NewClient creates a source client from the HTTP configuration. Pass a nil
// store to disable response caching.
func NewClient(cfg model.HTTPConfig, store cache.Cache, cacheTTL time.Duration) *Client {
	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   newHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
		robots:    robots,
		store:     store,
		cacheTTL:  cacheTTL,
	}
}

// Get fetches the URL and returns the response body, capped at the configured
// byte limit. Non-2xx statuses are errors.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if c.store != nil {
		if body, found := c.store.Get(cache.Key("search", rawURL)); found {
			return body, nil
		}
	}

	if c.robots != nil {
		allowed, crawlDelay, err := c.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt: %s", rawURL)
		}
		if crawlDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(crawlDelay):
			}
		}
	}

	if err := c.limiter.wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/atom+xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if c.store != nil {
		_ = c.store.Set(cache.Key("search", rawURL), body, c.cacheTTL)
	}

	return body, nil
}

// GetJSON fetches the URL and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return nil
}
