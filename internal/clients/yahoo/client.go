// Package yahoo provides a client for the Yahoo Finance quote and chart APIs
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/dvillanueva/cartera/internal/common"
	"github.com/dvillanueva/cartera/internal/interfaces"
	"github.com/dvillanueva/cartera/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Yahoo rejects requests without a browser-like user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client implements the MarketDataClient interface against Yahoo Finance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
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
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
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
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// chartResponse mirrors the /v8/finance/chart payload. Price arrays may
// contain nulls for halted or partial sessions.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// barFromChart collapses a chart result into a single daily bar.
// Open comes from the first non-null open, close from the last non-null
// close. Returns nil when no usable quote points exist.
func barFromChart(resp *chartResponse) *models.Bar {
	if resp.Chart.Error != nil || len(resp.Chart.Result) == 0 {
		return nil
	}
	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	bar := &models.Bar{
		Date: time.Unix(result.Timestamp[0], 0).UTC(),
	}

	found := false
	for _, v := range quote.Open {
		if v != nil {
			bar.Open = *v
			found = true
			break
		}
	}
	for i := len(quote.Close) - 1; i >= 0; i-- {
		if quote.Close[i] != nil {
			bar.Close = *quote.Close[i]
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	for _, v := range quote.High {
		if v != nil && *v > bar.High {
			bar.High = *v
		}
	}
	for _, v := range quote.Low {
		if v != nil && (bar.Low == 0 || *v < bar.Low) {
			bar.Low = *v
		}
	}
	for _, v := range quote.Volume {
		if v != nil {
			bar.Volume += *v
		}
	}

	return bar
}

// GetDailyBar retrieves the most recent one-day bar for the symbol.
func (c *Client) GetDailyBar(ctx context.Context, symbol string) (*models.Bar, error) {
	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1d")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))

	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	return barFromChart(&resp), nil
}

// GetBarForDate retrieves the daily bar covering the given calendar day.
// Returns nil when the market produced no bar (weekend, holiday, unknown
// symbol).
func (c *Client) GetBarForDate(ctx context.Context, symbol string, date time.Time) (*models.Bar, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", dayStart.Unix()))
	params.Set("period2", fmt.Sprintf("%d", dayEnd.Unix()))
	params.Set("interval", "1d")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))

	var resp chartResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	return barFromChart(&resp), nil
}

// quoteResponse mirrors the /v7/finance/quote payload.
type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketOpen          float64 `json:"regularMarketOpen"`
			RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			PostMarketPrice            float64 `json:"postMarketPrice"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// GetQuoteInfo retrieves the summary quote fields for the symbol.
func (c *Client) GetQuoteInfo(ctx context.Context, symbol string) (*models.QuoteInfo, error) {
	params := url.Values{}
	params.Set("symbols", symbol)

	var resp quoteResponse
	if err := c.get(ctx, "/v7/finance/quote", params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteResponse.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    resp.QuoteResponse.Error.Description,
			Endpoint:   "/v7/finance/quote",
		}
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote result for symbol %s", symbol)
	}

	r := resp.QuoteResponse.Result[0]
	return &models.QuoteInfo{
		Open:               r.RegularMarketOpen,
		PreviousClose:      r.RegularMarketPreviousClose,
		CurrentPrice:       r.PostMarketPrice,
		RegularMarketPrice: r.RegularMarketPrice,
	}, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
