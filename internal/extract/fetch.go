// Package extract implements the admin scraping tools: pulling a logo
// off a public profile page and pulling the publish date and transcript
// off a podcast episode page. Each extraction is a stateless
// input -> request -> response -> output pipeline over fetched HTML.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html"
)

// maxPageBytes caps how much of a scraped page is read. Pages are
// parsed best-effort from whatever fits under the cap.
const maxPageBytes = 2 << 20

// fetchTimeout bounds every page fetch; scraped sites can hang.
const fetchTimeout = 15 * time.Second

// Fetcher retrieves and parses remote HTML pages.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a Fetcher using the given HTTP client. A nil
// httpClient gets a default client with the package timeout.
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: fetchTimeout}
	}
	return &Fetcher{httpClient: httpClient}
}

// FetchHTML GETs the page and parses it into a DOM tree. The parsed
// base URL is returned for resolving relative links.
func (f *Fetcher) FetchHTML(ctx context.Context, pageURL string) (*html.Node, *url.URL, error) {
	base, err := url.Parse(pageURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, nil, fmt.Errorf("invalid page URL %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating page request: %w", err)
	}
	// Some profile pages serve bots a stub without the meta tags.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; MeridianBot/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("fetching %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, base, nil
}

// walk visits every node in the tree in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// metaContent returns the content of a meta tag matched by property or
// name, or "".
func metaContent(doc *html.Node, key string) string {
	var content string
	walk(doc, func(n *html.Node) {
		if content != "" || n.Type != html.ElementNode || n.Data != "meta" {
			return
		}
		if attr(n, "property") == key || attr(n, "name") == key {
			content = attr(n, "content")
		}
	})
	return content
}

// textContent concatenates the text nodes under n.
func textContent(n *html.Node) string {
	var out []byte
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			out = append(out, c.Data...)
		}
	})
	return string(out)
}
