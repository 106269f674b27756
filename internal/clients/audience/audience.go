// Package audience provides an HTTP client for the mailing-list
// provider's REST API.
package audience

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// requestTimeout bounds every call to the provider.
const requestTimeout = 10 * time.Second

// Client communicates with the mailing-list provider.
type Client struct {
	baseURL    string
	apiKey     string
	listID     string
	httpClient *http.Client
}

// NewClient creates a mailing-list API client. A nil httpClient gets a
// default client with the package timeout.
func NewClient(baseURL, apiKey, listID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		listID:     listID,
		httpClient: httpClient,
	}
}

// Subscribe adds an email to the configured list. Re-subscribing an
// existing address is not an error on the provider side.
func (c *Client) Subscribe(ctx context.Context, email, source string) error {
	body := struct {
		Email  string `json:"email"`
		Source string `json:"source,omitempty"`
	}{Email: email, Source: source}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding subscribe request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/lists/%s/subscribers", c.baseURL, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("subscribing %s: %w", email, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("subscribing %s: unexpected status %d", email, resp.StatusCode)
	}
	return nil
}

// Unsubscribe removes an email from the configured list. A 404 from the
// provider is treated as success: the address is already gone.
func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	url := fmt.Sprintf("%s/v1/lists/%s/subscribers/%s", c.baseURL, c.listID, email)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("creating unsubscribe request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unsubscribing %s: %w", email, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("unsubscribing %s: unexpected status %d", email, resp.StatusCode)
	}
}
