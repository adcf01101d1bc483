// Package onemap queries the OneMap address search API for postal codes and
// free-text addresses.
package onemap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/search"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
)

// DefaultBaseURL is the OneMap elastic search endpoint
const DefaultBaseURL = "https://www.onemap.gov.sg/api/common/elastic/search"

const serviceName = "onemap"

// Client searches OneMap with rate limiting and retries
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	policy  search.RetryPolicy

	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	metrics *telemetry.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

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

// New creates a client with a five second attempt timeout and the default retry policy
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: 5 * time.Second,
		policy:  search.DefaultRetryPolicy(),
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiRecord mirrors one entry of the OneMap "results" array
type apiRecord struct {
	SearchVal string `json:"SEARCHVAL"`
	BlkNo     string `json:"BLK_NO"`
	RoadName  string `json:"ROAD_NAME"`
	Building  string `json:"BUILDING"`
	Address   string `json:"ADDRESS"`
	Postal    string `json:"POSTAL"`
	Latitude  string `json:"LATITUDE"`
	Longitude string `json:"LONGITUDE"`
}

func (r apiRecord) canonical() search.PostalRecord {
	return search.PostalRecord{
		BlockNumber:  dropNil(r.BlkNo),
		StreetName:   dropNil(r.RoadName),
		PostalCode:   dropNil(r.Postal),
		BuildingName: dropNil(r.Building),
		Address:      r.Address,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
	}
}

func dropNil(s string) string {
	if s == search.NilBlock {
		return ""
	}
	return s
}

// Search looks up query, retrying transient failures
func (c *Client) Search(ctx context.Context, query string) *search.PostalResult {
	start := time.Now()
	var permanent bool

	records, status := search.Do(ctx, c.policy, func(ctx context.Context) ([]search.PostalRecord, search.ResponseStatus) {
		var (
			recs []search.PostalRecord
			st   search.ResponseStatus
		)
		recs, st, permanent = c.fetch(ctx, query)
		return recs, st
	}, func(s search.ResponseStatus) bool {
		return !permanent && s.Transient()
	})

	result := search.NewPostalResult(query, records, status)
	c.metrics.ObserveLookup(serviceName, string(result.Status), time.Since(start))
	c.log.Debug("onemap search",
		zap.String("query", query),
		zap.String("status", string(result.Status)),
		zap.Int("records", len(result.Records)),
		zap.Duration("took", time.Since(start)))
	return result
}

// fetch performs a single attempt
func (c *Client) fetch(ctx context.Context, query string) ([]search.PostalRecord, search.ResponseStatus, bool) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, search.ContextStatus(err), true
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("searchVal", query)
	params.Set("returnGeom", "Y")
	params.Set("getAddrDetails", "Y")
	params.Set("pageNum", "1")

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error("failed to build onemap request", zap.Error(err))
		return nil, search.StatusError, true
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	status, permanent := search.ClassifyHTTP(resp, err)
	if err != nil {
		c.log.Warn("onemap request failed", zap.String("query", query), zap.Error(err))
		return nil, status, permanent
	}
	defer resp.Body.Close()

	if status != search.StatusOK {
		c.log.Warn("onemap returned error status", zap.String("query", query), zap.Int("code", resp.StatusCode))
		io.Copy(io.Discard, resp.Body)
		return nil, status, permanent
	}

	records, err := decodeResults(resp.Body)
	if err != nil {
		if attemptCtx.Err() != nil {
			c.log.Warn("onemap response cut short", zap.String("query", query), zap.Error(err))
			return nil, search.ContextStatus(attemptCtx.Err()), false
		}
		c.log.Warn("invalid onemap response", zap.String("query", query), zap.Error(err))
		return nil, search.StatusInvalidResponse, true
	}
	return records, search.StatusOK, false
}

// decodeResults requires a JSON object with a "results" array
func decodeResults(r io.Reader) ([]search.PostalRecord, error) {
	var body struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	if len(body.Results) == 0 || string(body.Results) == "null" {
		return nil, fmt.Errorf("missing results")
	}

	var raw []apiRecord
	if err := json.Unmarshal(body.Results, &raw); err != nil {
		return nil, fmt.Errorf("results is not a list of records: %w", err)
	}

	records := make([]search.PostalRecord, 0, len(raw))
	for _, rec := range raw {
		records = append(records, rec.canonical())
	}
	return records, nil
}
