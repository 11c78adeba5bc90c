// Package supabase implements the domain gateway ports against a
// Supabase-style service: GoTrue for authentication and PostgREST for the
// row-level-secured data API. Both speak plain JSON over HTTP, so the
// client is a thin wrapper around net/http.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"minitodo/internal/domain"
)

// Client talks to a single Supabase project. The clock dates token
// expiries, so tests can pin them.
// Fields are ordered to minimize memory padding.
type Client struct {
	httpClient *http.Client
	clock      domain.Clock
	baseURL    string // Project base URL without trailing slash
	anonKey    string // Public API key, sent as the apikey header
}

// New creates a Client for the given project URL and public API key.
func New(baseURL, anonKey string, clock domain.Clock) *Client {
	return &Client{
		httpClient: &http.Client{},
		clock:      clock,
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
	}
}

// NewWithHTTPClient creates a Client with a custom *http.Client.
// This is useful for testing.
func NewWithHTTPClient(baseURL, anonKey string, clock domain.Clock, hc *http.Client) *Client {
	c := New(baseURL, anonKey, clock)
	c.httpClient = hc
	return c
}

// request describes a single HTTP call against the service.
// Fields are ordered to minimize memory padding.
type request struct {
	body    any               // Encoded as JSON when non-nil
	headers map[string]string // Extra headers (e.g. Prefer)
	query   url.Values
	method  string
	path    string // Path under the base URL, starting with /
	token   string // Bearer token; falls back to the anon key when empty
}

// do performs the request and decodes a JSON response into out (ignored
// when out is nil). It returns the HTTP status code and the raw body so
// callers can map provider-specific error payloads.
func (c *Client) do(ctx context.Context, req request, out any) (int, []byte, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	token := req.token
	if token == "" {
		token = c.anonKey
	}
	httpReq.Header.Set("apikey", c.anonKey)
	httpReq.Header.Set("Authorization", "Bearer "+token)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, data, fmt.Errorf("decode response body: %w", err)
		}
	}
	return resp.StatusCode, data, nil
}
