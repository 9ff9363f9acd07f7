// Package http wraps the standard client with the defaults outbound calls
// from this service should share.
package http

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "college-match-workers/1.0"
)

type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with the given per-request timeout. A
// non-positive timeout falls back to the package default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return c.httpClient.Do(req)
}

// DoWithContext ties the request to ctx so callers can cancel in-flight
// calls when the job deadline expires.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}
