// Package websearch provides a DuckDuckGo HTML search client
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/vantage/internal/common"
	"github.com/bobmcallan/vantage/internal/interfaces"
	"github.com/bobmcallan/vantage/internal/models"
)

const (
	DefaultBaseURL    = "https://html.duckduckgo.com/html/"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxResults = 5
	MaxResultsLimit   = 10

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client implements the WebSearchClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *common.Logger
}

var _ interfaces.WebSearchClient = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the search endpoint
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new search client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		logger:     common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClampMaxResults bounds a requested result count to [1, 10], defaulting to 5.
func ClampMaxResults(n int) int {
	if n <= 0 {
		return DefaultMaxResults
	}
	if n > MaxResultsLimit {
		return MaxResultsLimit
	}
	return n
}

// Search returns general web results
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.WebResult, error) {
	return c.search(ctx, query, maxResults, "")
}

// SearchNews returns results published within the past week
func (c *Client) SearchNews(ctx context.Context, query string, maxResults int) ([]models.WebResult, error) {
	return c.search(ctx, query+" news", maxResults, "w")
}

func (c *Client) search(ctx context.Context, query string, maxResults int, dateFilter string) ([]models.WebResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	maxResults = ClampMaxResults(maxResults)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	form := url.Values{}
	form.Set("q", query)
	if dateFilter != "" {
		form.Set("df", dateFilter)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	c.logger.Debug().Str("query", query).Str("df", dateFilter).Msg("Web search request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}

	return parseResults(doc, maxResults), nil
}

func parseResults(doc *goquery.Document, maxResults int) []models.WebResult {
	results := make([]models.WebResult, 0, maxResults)

	doc.Find(".result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if sel.HasClass("result--ad") {
			return true
		}
		link := sel.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return true
		}

		results = append(results, models.WebResult{
			Position: len(results) + 1,
			Title:    title,
			URL:      decodeRedirect(href),
			Snippet:  collapseSpace(sel.Find(".result__snippet").First().Text()),
			Source:   collapseSpace(sel.Find(".result__url").First().Text()),
			Date:     collapseSpace(sel.Find(".result__timestamp").First().Text()),
		})
		return len(results) < maxResults
	})

	return results
}

// decodeRedirect unwraps DuckDuckGo's //duckduckgo.com/l/?uddg=<target> links.
func decodeRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
