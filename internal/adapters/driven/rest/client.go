// Package rest implements the Transport port against the collection
// service's JSON API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.Transport = (*Client)(nil)

// Client is an authenticated JSON client for the collection service.
// Every request carries the bearer token; the token never appears in
// request bodies or log output.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. The token is
// attached as a bearer authorization header on every request. A timeout
// of zero falls back to DefaultTimeout.
func NewClient(ctx context.Context, baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: tc,
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// Useful for testing.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Send performs one JSON request against the service. Non-2xx responses
// are returned as a TransportResponse for the caller to classify; an
// error is returned only when no response was received at all.
func (c *Client) Send(ctx context.Context, method, path string, body any) (*driven.TransportResponse, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return &driven.TransportResponse{
		StatusCode: resp.StatusCode,
		Body:       decodeBody(resp.Body),
	}, nil
}

// Validate checks connectivity and credentials with a health probe.
func (c *Client) Validate(ctx context.Context) error {
	resp, err := c.Send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    bodyMessage(resp.Body),
			URL:        c.baseURL + "/health",
		}
	}
	return nil
}

// decodeBody decodes a JSON object body. Empty or non-object bodies
// yield nil; a record write outcome never depends on the response body.
func decodeBody(r io.Reader) map[string]any {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil
	}
	return decoded
}

// bodyMessage extracts a human-readable detail from an error body.
func bodyMessage(body map[string]any) string {
	for _, key := range []string{"error", "message", "detail"} {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return "request failed"
}
