package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"fliptips/backend-go/internal/config"
)

// UpstreamError is a non-success response from a price feed. Feed failures
// are not retried; the whole aggregation call fails with this error.
type UpstreamError struct {
	Status int
	URL    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("prices api: %d for %s", e.Status, e.URL)
}

// FeedClient fetches upstream feeds through the shared response cache.
// A cache hit short-circuits the network call entirely; a miss fetches,
// stores the raw body under URL+User-Agent for the configured TTL, then
// parses it for the caller.
type FeedClient struct {
	client    *resty.Client
	cache     Cache
	baseURL   string
	userAgent string
	ttl       time.Duration
}

func NewFeedClient(cfg config.Config, cache Cache) *FeedClient {
	client := resty.New()
	client.SetTimeout(cfg.UpstreamTimeout)
	client.SetHeader("User-Agent", cfg.UserAgent)

	return &FeedClient{
		client:    client,
		cache:     cache,
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		userAgent: cfg.UserAgent,
		ttl:       cfg.CacheTTL,
	}
}

func (c *FeedClient) FetchJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	key := feedCacheKey(url, c.userAgent)
	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			return json.Unmarshal(b, out)
		}
	}

	res, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return err
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return &UpstreamError{Status: res.StatusCode(), URL: url}
	}

	body := res.Body()
	if c.cache != nil {
		_ = c.cache.Set(ctx, key, body, c.ttl)
	}
	return json.Unmarshal(body, out)
}

// Probe hits a feed directly, bypassing the cache. Used only by the
// diagnostic surface, which wants live reachability, not cached bodies.
func (c *FeedClient) Probe(ctx context.Context, path string) (int, error) {
	res, err := c.client.R().SetContext(ctx).Get(c.baseURL + path)
	if err != nil {
		return 0, err
	}
	return res.StatusCode(), nil
}

func feedCacheKey(url, userAgent string) string {
	return url + "|" + userAgent
}
