// Package client is the typed HTTP client for the remote storefront backend
// (catalog, auth, orders, admin). It owns the wire concerns: bearer token
// injection, the backend's response envelopes, and the error taxonomy.
package client

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
)

// TokenSource supplies the current bearer token, or "" when the visitor is
// anonymous. It is consulted on every request, so a login that lands between
// two calls is picked up without rebuilding the client.
type TokenSource func() string

// Client talks to the remote backend. Construct with New; the zero value is
// not usable.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client (tests, custom timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource wires the session's token into outgoing requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a client rooted at baseURL (e.g. "https://api.example.com/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one JSON round trip. A non-nil body is JSON-encoded; a non-nil
// out receives the decoded response body. Non-2xx statuses come back as
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Kind: KindTransport, Message: "malformed response body", Err: err}
	}
	return nil
}

// doRaw is do without response decoding; it returns the raw response bytes.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "reading response failed", Err: err}
	}
	if resp.StatusCode >= 400 {
		return nil, errorFromResponse(resp.StatusCode, raw)
	}
	return raw, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// download streams a GET response body into w (file exports).
func (c *Client) download(ctx context.Context, path string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: KindTransport, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return errorFromResponse(resp.StatusCode, raw)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// listEnvelope decodes either the backend's {"data": [...]} envelope or a
// bare JSON array into items.
func listEnvelope(raw []byte, items any) error {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		return json.Unmarshal(wrapped.Data, items)
	}
	return json.Unmarshal(raw, items)
}

// detailEnvelope decodes {"data": {...}} or a bare object into item.
func detailEnvelope(raw []byte, item any) error {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 && wrapped.Data[0] == '{' {
		return json.Unmarshal(wrapped.Data, item)
	}
	return json.Unmarshal(raw, item)
}

func itoa(v uint) string { return fmt.Sprintf("%d", v) }
