// Package vectorizer provides an HTTP client for the image
// vectorization service, which turns raster logos into SVG.
package vectorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxSVGBytes caps how much of the provider's response we read.
const maxSVGBytes = 4 << 20

// requestTimeout bounds every call to the provider. Vectorization can
// be slow on large images, so it runs longer than a plain API call.
const requestTimeout = 30 * time.Second

// Client communicates with the vectorization service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a vectorizer API client. A nil httpClient gets a
// default client with the package timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Vectorize submits an image URL and returns the resulting SVG markup.
func (c *Client) Vectorize(ctx context.Context, imageURL string) (string, error) {
	body := struct {
		ImageURL string `json:"image_url"`
		Format   string `json:"format"`
	}{ImageURL: imageURL, Format: "svg"}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding vectorize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/vectorize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating vectorize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vectorizing image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vectorizing image: unexpected status %d", resp.StatusCode)
	}

	svg, err := io.ReadAll(io.LimitReader(resp.Body, maxSVGBytes))
	if err != nil {
		return "", fmt.Errorf("reading vectorize response: %w", err)
	}
	return string(svg), nil
}
