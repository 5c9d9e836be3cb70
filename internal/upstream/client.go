// Package upstream talks JSON to the site's content API.
package upstream

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

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/utils"
	"github.com/MrSnakeDoc/banho/internal/version"
)

const (
	// DefaultTimeout bounds a whole upstream request.
	DefaultTimeout = 10 * time.Second

	// maxBody caps how much of a response is read.
	maxBody = 8 << 20
)

// Client is a thin JSON client. Every failure, including non-2xx statuses,
// is returned as a *content.TransportError. Requests are not retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL (for example "https://api.banho.ms/api").
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid upstream URL %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Get fetches path with the given query parameters and returns the body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil)
}

// Send issues a mutation (POST, PUT, DELETE) with payload encoded as JSON.
// A nil payload sends no body.
func (c *Client) Send(ctx context.Context, method, path string, payload any) ([]byte, error) {
	target := c.baseURL + path
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", method, err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, target, body)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &content.TransportError{Op: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &content.TransportError{Op: method, URL: target, Err: err}
	}
	defer utils.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &content.TransportError{Op: method, URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &content.TransportError{Op: method, URL: target, Err: err}
	}
	return data, nil
}
