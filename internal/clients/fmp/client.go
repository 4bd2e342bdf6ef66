// Package fmp provides a client for the Financial Modeling Prep API
package fmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
)

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/stable"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second

	cacheKeyPrefix = "fmp:"
)

// ErrNoData is returned when FMP answers with an empty payload for a symbol.
var ErrNoData = errors.New("no data returned")

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	if string(data) == "null" {
		*f = 0
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the FMPClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	cache      interfaces.ResponseCache
	cacheTTL   time.Duration
}

var _ interfaces.FMPClient = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCache enables response caching. ttl applies to statement endpoints;
// quotes, search and profiles use their own freshness windows capped at ttl.
func WithCache(cache interfaces.ResponseCache, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient creates a new FMP client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:   common.NewSilentLogger(),
		cacheTTL: common.FreshnessStatements,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("FMP API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// cacheKey identifies a request independent of the API key.
func cacheKey(endpoint string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "apikey" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(cacheKeyPrefix)
	b.WriteString(endpoint)
	for i, k := range keys {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params.Get(k))
	}
	return b.String()
}

func (c *Client) ttlFor(endpoint string) time.Duration {
	var ttl time.Duration
	switch endpoint {
	case "quote":
		ttl = common.FreshnessQuote
	case "search-symbol":
		ttl = common.FreshnessSearch
	case "profile":
		ttl = common.FreshnessProfile
	default:
		return c.cacheTTL
	}
	if c.cacheTTL > 0 && c.cacheTTL < ttl {
		return c.cacheTTL
	}
	return ttl
}

// get performs a rate-limited GET request, consulting the cache first.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}

	key := cacheKey(endpoint, params)
	if c.cache != nil {
		if data, ok, err := c.cache.Get(ctx, key); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("FMP cache read failed")
		} else if ok {
			if err := json.Unmarshal(data, result); err == nil {
				c.logger.Debug().Str("endpoint", endpoint).Msg("FMP cache hit")
				return nil
			}
		}
	}

	data, err := c.fetch(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, data, c.ttlFor(endpoint)); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("FMP cache write failed")
		}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Str("symbol", params.Get("symbol")).Msg("FMP API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the request URL, api key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to execute %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   endpoint,
		}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("{}")) {
		return nil, ErrNoData
	}

	// FMP reports some failures (bad key, plan limits) as 200 with an error object
	if trimmed[0] == '{' {
		var errBody struct {
			ErrorMessage string `json:"Error Message"`
			Error        string `json:"error"`
		}
		if json.Unmarshal(trimmed, &errBody) == nil {
			if msg := firstNonEmpty(errBody.ErrorMessage, errBody.Error); msg != "" {
				return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Endpoint: endpoint}
			}
		}
	}

	return trimmed, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...flexFloat64) float64 {
	for _, v := range values {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}
