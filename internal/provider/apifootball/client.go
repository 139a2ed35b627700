// Package apifootball implements the provider.Source contract against the
// API-Football v3 API.
//
// API-Football uses header-based auth (x-apisports-key) and wraps every
// payload in a common envelope with a "response" array. Rate limiting is
// handled via a token bucket limiter.
package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

// Client is the HTTP client for all API-Football endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an API-Football HTTP client with rate limiting.
func NewClient(apiKey string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// envelope is the common API-Football response wrapper. The "errors" field is
// an empty array on success and an object keyed by error kind on failure.
type envelope struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

// get performs a rate-limited GET request to an API-Football endpoint.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API-Football %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var result envelope
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiErr := envelopeError(result.Errors); apiErr != "" {
		return nil, fmt.Errorf("API-Football %s: %s", path, apiErr)
	}

	return &result, nil
}

// envelopeError returns a printable error string when the envelope carries
// one, or "" for the empty array/object the API sends on success.
func envelopeError(raw json.RawMessage) string {
	switch s := string(raw); s {
	case "", "[]", "{}", "null":
		return ""
	default:
		return truncate(raw, 200)
	}
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
