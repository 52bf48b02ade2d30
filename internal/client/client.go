// Package client is the HTTP client for the marksd bookmark API,
// used by the marks terminal command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// APIError is a non-2xx response from the server, carrying the detail
// message the API puts in its error envelope.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// IsConflict reports whether the error is the duplicate-URL conflict.
func (e *APIError) IsConflict() bool {
	return e.Status == http.StatusConflict
}

// Client talks to a marksd server.
type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

type listResponse struct {
	Data  []domain.Bookmark `json:"data"`
	Count int               `json:"count"`
}

type createRequest struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// List fetches all bookmarks.
func (c *Client) List(ctx context.Context) ([]domain.Bookmark, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bookmarks", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bookmarks: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result listResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	return result.Data, nil
}

// Add creates a bookmark. A duplicate URL comes back as an *APIError
// with status 409; callers decide whether that is fatal.
func (c *Client) Add(ctx context.Context, label, url string) (*domain.Bookmark, error) {
	body, err := json.Marshal(createRequest{Label: label, URL: url})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/bookmarks", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("add bookmark: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var created domain.Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created bookmark: %w", err)
	}
	return &created, nil
}

// Delete removes a bookmark by id and returns the server's
// confirmation message.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/bookmarks/%d", c.baseURL, id), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("delete bookmark: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	confirmation, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read confirmation: %w", err)
	}
	return string(confirmation), nil
}

// apiError decodes the error envelope, falling back to the raw body
// for endpoints that answer in plain text.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Detail != "" {
		return &APIError{Status: resp.StatusCode, Detail: envelope.Detail}
	}
	return &APIError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
