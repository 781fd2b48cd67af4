// Package remote implements the HTTP client for the remote product
// service, the system of record for the catalog.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mlevkov/prodsync/internal/product"
)

const productsPath = "/api/v1/products"

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// Client talks to the remote product service. A failed call is returned as
// an error: *APIError for a non-2xx response, the transport error otherwise.
// The client does not retry; callers decide whether to re-invoke.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a Client for the provided base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("remote: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("remote: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAll retrieves the full catalog in service order.
func (c *Client) FetchAll(ctx context.Context) ([]product.Product, error) {
	var list []product.Product
	if err := c.call(ctx, http.MethodGet, productsPath, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create persists a candidate product and returns the stored record.
func (c *Client) Create(ctx context.Context, p product.Product) (*product.Product, error) {
	var created product.Product
	if err := c.call(ctx, http.MethodPost, productsPath, &p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the record identified by p.SKU and returns the stored
// version.
func (c *Client) Update(ctx context.Context, p product.Product) (*product.Product, error) {
	var updated product.Product
	if err := c.call(ctx, http.MethodPut, productsPath+"/"+url.PathEscape(p.SKU), &p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the record identified by sku.
func (c *Client) Delete(ctx context.Context, sku string) error {
	return c.call(ctx, http.MethodDelete, productsPath+"/"+url.PathEscape(sku), nil, nil)
}

// call executes a single JSON request. body and out may be nil.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("remote: invalid path %q: %w", path, err)
	}
	fullURL := c.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode response body: %w", err)
	}
	return nil
}
