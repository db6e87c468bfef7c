// Package client calls a running item server over HTTP.
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

	"itemserver/catalog"
)

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, strings.TrimSpace(e.Body))
}

// Client talks to the item routes below BaseURL, e.g.
// http://localhost:8080/api/server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client with the given base URL and request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// GetCallObject looks an item up by title. A nil item means no match.
func (c *Client) GetCallObject(ctx context.Context, query string) (*catalog.Item, error) {
	u := c.BaseURL + "/get-call-obj?" + url.Values{"query": {query}}.Encode()

	var item *catalog.Item
	if err := c.do(ctx, http.MethodGet, u, nil, nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetCallList fetches every item.
func (c *Client) GetCallList(ctx context.Context) (catalog.ItemList, error) {
	var list catalog.ItemList
	err := c.do(ctx, http.MethodGet, c.BaseURL+"/get-call-list", nil, nil, &list)
	return list, err
}

// PostCall sends req and returns the item named by query, or nil.
func (c *Client) PostCall(ctx context.Context, query string, req catalog.UserRequest) (*catalog.Item, error) {
	u := c.BaseURL + "/post-call/" + url.PathEscape(query)

	var item *catalog.Item
	if err := c.do(ctx, http.MethodPost, u, nil, req, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// ExchangeCall sends token in the X-Authorization header along with req.
func (c *Client) ExchangeCall(ctx context.Context, token string, req catalog.UserRequest) (catalog.ItemList, error) {
	headers := map[string]string{"X-Authorization": token}

	var list catalog.ItemList
	err := c.do(ctx, http.MethodPost, c.BaseURL+"/exchange-call", headers, req, &list)
	return list, err
}

func (c *Client) do(ctx context.Context, method, u string, headers map[string]string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, URL: u, Status: resp.StatusCode, Body: string(data)}
	}

	// An empty body is treated like JSON null.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
