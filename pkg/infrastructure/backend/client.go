// Package backend talks to the restaurant ERP REST API that owns dishes,
// products, inventory, sales and the forecasting service.
package backend

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gestrest/supplyplan/pkg/infrastructure/cache"
	"github.com/gestrest/supplyplan/pkg/logger"
)

const apiPrefix = "/api"

// catalogPaths are the reads served from the cache. Inventory, sales and
// prediction reads always go to the backend.
var catalogPaths = []string{"/dishes", "/products", "/ml-service/weekly-supply", "/ml-service/model"}

// APIError is returned for any non-2xx response
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error API %d: %s", e.Status, e.Body)
}

// TokenSource supplies the bearer token for each request. An empty token
// sends no Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource with a fixed token
type StaticToken string

// Token returns the fixed token
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client is a JSON client for the backend API
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	log        *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithHTTPClient replaces the default 30s-timeout HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache stores successful catalog GET response bodies for ttl, keyed
// per token
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

// WithLogger sets the request logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base url cannot be empty")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resolve builds the request URL. Absolute URLs pass through; other paths
// get the /api prefix unless they already carry it.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, apiPrefix) {
		path = apiPrefix + path
	}
	return c.baseURL + path
}

// cacheable reports whether a GET of path may be answered from the cache
func cacheable(path string) bool {
	path = strings.TrimPrefix(path, apiPrefix)
	for _, prefix := range catalogPaths {
		if path == prefix || strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(path, prefix+"?") {
			return true
		}
	}
	return false
}

// cacheKey scopes a cached response to the token that fetched it
func cacheKey(token, url string) string {
	if token == "" {
		return "anon:" + url
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8]) + ":" + url
}

// do sends one request. A nil out or a 204 response skips decoding.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.resolve(path)

	var token string
	if c.tokens != nil {
		var err error
		if token, err = c.tokens.Token(ctx); err != nil {
			return fmt.Errorf("failed to get auth token: %w", err)
		}
	}

	useCache := method == http.MethodGet && c.cache != nil && out != nil && cacheable(path)
	key := cacheKey(token, url)
	if useCache {
		if cached, err := c.cache.Get(ctx, key); err == nil {
			c.log.Debug("backend cache hit", "url", url)
			return json.Unmarshal(cached, out)
		} else if !errors.Is(err, cache.ErrMiss) {
			c.log.Warn("backend cache read failed", "url", url, "error", err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debug("backend request", "method", method, "url", url, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	if useCache {
		if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
			c.log.Warn("backend cache write failed", "url", url, "error", err)
		}
	}
	return nil
}
