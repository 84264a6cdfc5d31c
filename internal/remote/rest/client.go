package rest

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

	"github.com/google/uuid"

	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

// Ensure Client implements the catalog contract at compile time. The content
// contract is served through ContentDocument.
var _ remote.Items = (*Client)(nil)

// Client talks to a JSON document service over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	pollEvery time.Duration
}

const (
	defaultUserAgent = "storefront/0.1"
	requestTimeout   = 5 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithPollInterval sets how often subscriptions re-fetch.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollEvery = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the service at rawURL.
func NewClient(rawURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		pollEvery: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type itemListResponse struct {
	Items []shop.Item `json:"items"`
}

type createResponse struct {
	ID shop.ID `json:"id"`
}

type itemPayload struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"coverImage"`
	Category    string  `json:"genre"`
	Note        string  `json:"publisher"`
	Stock       int     `json:"stock"`
}

func payloadFromInput(in shop.ItemInput) itemPayload {
	return itemPayload(in)
}

// FetchAll retrieves the catalog ordered by title.
func (c *Client) FetchAll(ctx context.Context) ([]shop.Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload itemListResponse
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &payload); err != nil {
		return nil, err
	}
	items := make([]shop.Item, 0, len(payload.Items))
	for _, it := range payload.Items {
		items = append(items, it.Sanitized())
	}
	sortByTitle(items)
	return items, nil
}

// Create posts a new item and returns the id assigned by the service.
func (c *Client) Create(ctx context.Context, in shop.ItemInput) (shop.ID, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload createResponse
	if err := c.do(ctx, http.MethodPost, "/api/items", payloadFromInput(in), &payload); err != nil {
		return "", err
	}
	if payload.ID == "" {
		return "", fmt.Errorf("create item: service returned empty id")
	}
	return payload.ID, nil
}

// Update patches an existing item. A missing item is an error.
func (c *Client) Update(ctx context.Context, item shop.Item) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPatch, itemPath(item.ID), item.Sanitized(), nil)
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id shop.ID) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

// Seed writes item under its own id, creating it if needed.
func (c *Client) Seed(ctx context.Context, item shop.Item) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, itemPath(item.ID), item.Sanitized(), nil)
}

// Fetch retrieves the page content document.
func (c *Client) Fetch(ctx context.Context) (shop.PageContent, error) {
	if c == nil {
		return shop.PageContent{}, fmt.Errorf("client is nil")
	}
	var content shop.PageContent
	if err := c.do(ctx, http.MethodGet, "/api/content", nil, &content); err != nil {
		return shop.PageContent{}, err
	}
	return content, nil
}

// Save replaces the page content document.
func (c *Client) Save(ctx context.Context, content shop.PageContent) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, "/api/content", content, nil)
}

func itemPath(id shop.ID) string {
	return "/api/items/" + url.PathEscape(string(shop.NormalizeID(id)))
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("api %s %s: %w", method, rel.String(), remote.ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s %s returned status %d", method, rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("remote url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse remote url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
