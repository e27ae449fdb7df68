// Package canvas is a thin client for the Canvas LMS REST API, covering the
// course, assignment, submission, and user resources that roster management
// needs. All calls take a context; transient failures (rate limits, 5xx)
// are retried here with exponential backoff so the callers above never
// retry themselves.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. https://canvas.example.edu/api/v1.
	BaseURL string

	// AccessToken is the Canvas bearer token.
	AccessToken string

	Timeout    time.Duration
	MaxRetries int
}

// DefaultConfig returns a Config with sensible defaults for the given
// instance and token.
func DefaultConfig(baseURL, accessToken string) Config {
	return Config{
		BaseURL:     baseURL,
		AccessToken: accessToken,
		Timeout:     30 * time.Second,
		MaxRetries:  3,
	}
}

// Client talks to one Canvas instance.
type Client struct {
	baseURL    string
	token      string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

// NewClient creates a Canvas API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.AccessToken,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Second,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// APIError is a non-2xx response from Canvas.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("canvas API request %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// do performs one authenticated request against a full URL and returns the
// response body and headers. Rate-limited and 5xx responses are retried.
func (c *Client) do(ctx context.Context, method, fullURL string, form url.Values) ([]byte, http.Header, error) {
	if c.token == "" {
		return nil, nil, fmt.Errorf("canvas access token not configured")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff * time.Duration(1<<uint(attempt-1))):
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}

		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &APIError{StatusCode: resp.StatusCode, URL: fullURL, Body: strings.TrimSpace(string(data))}
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, nil, &APIError{StatusCode: resp.StatusCode, URL: fullURL, Body: strings.TrimSpace(string(data))}
		}

		return data, resp.Header, nil
	}

	return nil, nil, fmt.Errorf("canvas API request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// get fetches a single API object.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	data, _, err := c.do(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode canvas response from %s: %w", path, err)
	}
	return nil
}

// submit sends a form-encoded write (PUT/DELETE) and discards the body.
func (c *Client) submit(ctx context.Context, method, path string, form url.Values) error {
	_, _, err := c.do(ctx, method, c.baseURL+path, form)
	return err
}

// getList fetches every page of a collection endpoint, following the
// RFC 5988 Link rel="next" headers Canvas paginates with.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("per_page") == "" {
		query.Set("per_page", "100")
	}

	next := c.baseURL + path + "?" + query.Encode()
	var items []T

	for next != "" {
		data, header, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("failed to decode canvas response from %s: %w", path, err)
		}
		items = append(items, page...)

		next = nextPageLink(header.Get("Link"))
	}

	return items, nil
}

// nextPageLink extracts the rel="next" URL from a Link header, or "" when
// this was the last page.
func nextPageLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.Trim(strings.TrimSpace(parts[0]), "<>")
		for _, param := range parts[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}
