// Package api implements the data-driven Pinterest API client: the
// command tree of endpoint descriptors, the request dispatcher, auth
// selection, bookmark pagination, and the OAuth token exchange.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production Pinterest API endpoint.
const DefaultBaseURL = "https://api.pinterest.com/v5"

const userAgent = "pinterest-ads-cli/0.1.0"

// Client is a Pinterest REST API client. It executes requests built by
// the dispatcher; it never retries on its own.
type Client struct {
	// HTTPClient is the underlying HTTP client.
	HTTPClient *http.Client

	// BaseURL is the API base URL (e.g. https://api.pinterest.com/v5).
	BaseURL string

	logger *zap.Logger
}

// ClientConfig contains configuration for creating a new client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *http.Client

	// Timeout applies to the default HTTP client when HTTPClient is nil.
	Timeout time.Duration

	// Logger logs requests at debug level (optional).
	Logger *zap.Logger
}

// New creates a new Pinterest API client.
func New(cfg ClientConfig) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = normalizeURL(baseURL)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		HTTPClient: httpClient,
		BaseURL:    baseURL,
		logger:     logger,
	}, nil
}

// normalizeURL ensures the URL has proper format.
func normalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)

	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}

	return strings.TrimSuffix(urlStr, "/")
}

// buildURL resolves a path against the base URL. Absolute URLs pass
// through unchanged.
func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

// Do executes a fully-built request plan and returns the response body.
// Non-2xx responses become *APIError with the body kept verbatim.
func (c *Client) Do(ctx context.Context, plan *Plan) (json.RawMessage, error) {
	fullURL := plan.URL
	if len(plan.Query) > 0 {
		sep := "?"
		if strings.Contains(fullURL, "?") {
			sep = "&"
		}
		fullURL += sep + plan.Query.Encode()
	}

	var bodyReader io.Reader
	if len(plan.Body) > 0 {
		bodyReader = bytes.NewReader(plan.Body)
	}

	req, err := http.NewRequestWithContext(ctx, plan.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if len(plan.Body) > 0 {
		req.Header.Set("Content-Type", plan.ContentType)
	}
	if plan.Auth != nil {
		plan.Auth.apply(req)
	}

	c.logger.Debug("request", zap.String("method", plan.Method), zap.String("url", fullURL))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(respBody)))

	if resp.StatusCode >= 400 {
		return nil, ParseAPIError(resp.StatusCode, respBody)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		// Some DELETE endpoints return 204 with no body.
		return json.RawMessage("null"), nil
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("response is not valid JSON (status %d)", resp.StatusCode)
	}

	return json.RawMessage(respBody), nil
}

// Plan is a fully-built request: substituted URL, query parameters,
// serialized body, and the selected auth. It lives for one call.
type Plan struct {
	Method      string
	URL         string
	Query       url.Values
	Body        []byte
	ContentType string
	Auth        Auth
}
