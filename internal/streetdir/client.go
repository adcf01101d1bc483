// Package streetdir scrapes streetdirectory.com search results for the property
// category of an address.
package streetdir

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/search"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
)

// DefaultBaseURL is the StreetDirectory search page
const DefaultBaseURL = "https://www.streetdirectory.com/asia_travel/search/"

const (
	serviceName = "streetdirectory"
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
)

// Client fetches and parses StreetDirectory result pages
type Client struct {
	baseURL string
	timeout time.Duration
	policy  search.RetryPolicy

	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *telemetry.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the search page URL
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithTimeout bounds each attempt
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

// WithRetryPolicy replaces the default retry policy
func WithRetryPolicy(p search.RetryPolicy) Option { return func(c *Client) { c.policy = p } }

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRateLimit caps requests per second. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = logging.OrNop(log) } }

// WithMetrics records lookup outcomes
func WithMetrics(m *telemetry.Metrics) Option { return func(c *Client) { c.metrics = m } }

// New creates a client with a ten second attempt timeout and the default retry policy
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: 10 * time.Second,
		policy:  search.DefaultRetryPolicy(),
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns the listings for query. An OK page without listings is NOT_FOUND.
func (c *Client) Search(ctx context.Context, query, country string, state, limit int) *search.CategoryResult {
	start := time.Now()
	var permanent bool

	page, status := search.Do(ctx, c.policy, func(ctx context.Context) ([]byte, search.ResponseStatus) {
		var (
			body []byte
			st   search.ResponseStatus
		)
		body, st, permanent = c.fetchHTML(ctx, query, country, state)
		return body, st
	}, func(s search.ResponseStatus) bool {
		return !permanent && s.Transient()
	})

	var items []search.CategoryItem
	if status == search.StatusOK {
		parsed, err := ParseListings(bytes.NewReader(page), limit)
		if err != nil {
			c.log.Warn("invalid streetdirectory page", zap.String("query", query), zap.Error(err))
			status = search.StatusInvalidResponse
		}
		items = parsed
	}

	result := search.NewCategoryResult(query, items, status)
	c.metrics.ObserveLookup(serviceName, string(result.Status), time.Since(start))
	c.log.Debug("streetdirectory search",
		zap.String("query", query),
		zap.String("status", string(result.Status)),
		zap.Int("items", len(result.Items)),
		zap.Duration("took", time.Since(start)))
	return result
}

// fetchHTML performs a single attempt
func (c *Client) fetchHTML(ctx context.Context, query, country string, state int) ([]byte, search.ResponseStatus, bool) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, search.ContextStatus(err), true
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("country", country)
	params.Set("state", strconv.Itoa(state))

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error("failed to build streetdirectory request", zap.Error(err))
		return nil, search.StatusError, true
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	status, permanent := search.ClassifyHTTP(resp, err)
	if err != nil {
		c.log.Warn("streetdirectory request failed", zap.String("query", query), zap.Error(err))
		return nil, status, permanent
	}
	defer resp.Body.Close()

	if status != search.StatusOK {
		c.log.Warn("streetdirectory returned error status", zap.String("query", query), zap.Int("code", resp.StatusCode))
		io.Copy(io.Discard, resp.Body)
		return nil, status, permanent
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		status := search.StatusError
		if attemptCtx.Err() != nil {
			status = search.ContextStatus(attemptCtx.Err())
		}
		return nil, status, false
	}
	return body, search.StatusOK, false
}
