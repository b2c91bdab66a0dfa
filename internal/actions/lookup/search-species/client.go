// internal/actions/lookup/search-species/client.go
package searchspecies

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	commonhttp "dialogue-actions/internal/common/http"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/metrics"
)

const maxBodyBytes = 4 << 20

// Client fetches species documents from the remote lookup service.
type Client struct {
	http   commonhttp.Doer
	config *Config
	cache  Cache
	logger logger.Logger
}

// NewClient wires the remote client. cache may be nil; caching is also
// off when config.CacheTTL is zero.
func NewClient(config *Config, doer commonhttp.Doer, cache Cache, log logger.Logger) *Client {
	return &Client{http: doer, config: config, cache: cache, logger: log}
}

func (c *Client) url(key string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(c.config.BaseURL, "/"),
		strings.Trim(c.config.Resource, "/"),
		url.PathEscape(key))
}

// Fetch issues at most one remote request for key. A 404 yields
// ErrSpeciesNotFound; other non-2xx statuses and transport errors yield
// ErrLookupFailed; undecodable or incomplete bodies yield ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, key string) (*Payload, error) {
	if p, ok := c.fromCache(ctx, key); ok {
		return p, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(key), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSpeciesNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLookupFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrLookupFailed, err)
	}

	payload, err := decodePayload(body)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, key, payload)
	return payload, nil
}

func decodePayload(body []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if p.ID == nil {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedResponse)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformedResponse)
	}
	return &p, nil
}

func (c *Client) cacheEnabled() bool {
	return c.cache != nil && c.config.CacheTTL > 0
}

func (c *Client) fromCache(ctx context.Context, key string) (*Payload, bool) {
	if !c.cacheEnabled() {
		return nil, false
	}
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("species cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	p, err := decodePayload(data)
	if err != nil {
		c.logger.Warn("discarding unreadable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	metrics.LookupCacheHits.Inc()
	return p, true
}

func (c *Client) toCache(ctx context.Context, key string, p *Payload) {
	if !c.cacheEnabled() {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.config.CacheTTL); err != nil {
		c.logger.Warn("species cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
