// Package codeforces proxies the public Codeforces API. Payloads pass
// through verbatim so the frontend sees the upstream shape unchanged.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://codeforces.com/api"

// Client fetches contest and profile data from Codeforces.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Contests returns the upstream contest list, gyms excluded.
func (c *Client) Contests(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.baseURL+"/contest.list?gym=false")
}

// UserInfo returns the upstream profile payload for one handle.
func (c *Client) UserInfo(ctx context.Context, handle string) (json.RawMessage, error) {
	return c.get(ctx, c.baseURL+"/user.info?handles="+url.QueryEscape(handle))
}

func (c *Client) get(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	// Codeforces reports errors as JSON with a FAILED status, so any
	// syntactically valid body is passed through as-is.
	if !json.Valid(body) {
		return nil, fmt.Errorf("unexpected response (status %d)", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
