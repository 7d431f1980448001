// Package api is the client for the Nomanion REST backend. All requests
// flow through a single configured HTTP client that injects the stored
// bearer token on the way out and normalizes every failure into one error
// shape on the way in. Calls are fire-once: no retries, no local timeout
// policy, no circuit breaking.
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

	"github.com/nomanion/nomadmin/internal/models"
)

// DefaultBaseURL is the production backend endpoint.
const DefaultBaseURL = "https://api.nomanion.com"

// apiPrefix is the versioned path prefix every endpoint lives under.
const apiPrefix = "/api/v1"

// TokenSource supplies the bearer token attached to outgoing requests.
// The token store satisfies this; absent means the request goes out
// unauthenticated.
type TokenSource interface {
	Token() (string, bool)
}

// Client calls the Nomanion backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, e.g. the caching
// client from NewCachingHTTPClient. Its transport is wrapped with the auth
// transport, never replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.httpClient = &clone
	}
}

// NewClient creates a backend client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &authTransport{base: base, tokens: tokens}

	return c
}

// BaseURL returns the configured backend endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a JSON request and decodes the response body into out. Every
// failure comes back as *Error with the normalized message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	return c.send(ctx, method, path, query, contentType, reader, out)
}

// send is the transport tail shared by JSON and multipart requests.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newResponseError(resp.StatusCode, resp.Status, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Message: "failed to decode response: " + err.Error(), Status: resp.StatusCode}
		}
	}

	return nil
}

// getList issues a GET for a paginated collection, unwrapping the
// data/pagination envelope.
func (c *Client) getList(ctx context.Context, path string, query url.Values, out any) (*models.Pagination, error) {
	var env struct {
		Data       json.RawMessage    `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return nil, err
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Message: "failed to decode response: " + err.Error()}
		}
	}
	return env.Pagination, nil
}

// ListOptions carries the pagination cursor for list endpoints.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}
