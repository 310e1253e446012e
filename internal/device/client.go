// internal/device/client.go
package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBody caps a single API response. The device serves small JSON documents.
const maxBody = 1 << 20

// Client talks to the device HTTP API.
// It is transport-only: callers decode the body.
type Client struct {
	baseURL string
	http    *http.Client
}

// Config is minimal transport config.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	method := e.Method
	if method == "" {
		method = http.MethodGet
	}
	return fmt.Sprintf("device: %s %s: status %d", method, e.Path, e.Code)
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("device client: base url required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Get issues one GET and returns the body of a 2xx response.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, path)
	return body, err
}

// GetTyped is Get plus the response Content-Type, for endpoints that
// answer either JSON or plain text.
func (c *Client) GetTyped(ctx context.Context, path string) ([]byte, string, error) {
	return c.do(ctx, http.MethodGet, path)
}

// Put issues one body-less PUT, the way the device takes settings in the path.
func (c *Client) Put(ctx context.Context, path string) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodPut, path)
	return body, err
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("device: build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("device: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, "", &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", fmt.Errorf("device: read %s: %w", path, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
