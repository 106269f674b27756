package extract

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Logo extracts the best candidate logo image URL from a profile page.
// Preference order: og:image, twitter:image, then the first <img> that
// looks like a logo. Relative URLs are resolved against the page URL.
func Logo(doc *html.Node, base *url.URL) (string, error) {
	for _, key := range []string{"og:image", "twitter:image"} {
		if c := metaContent(doc, key); c != "" {
			return resolveURL(base, c)
		}
	}

	var candidate string
	walk(doc, func(n *html.Node) {
		if candidate != "" || n.Type != html.ElementNode || n.Data != "img" {
			return
		}
		src := attr(n, "src")
		if src == "" {
			return
		}
		hint := strings.ToLower(src + " " + attr(n, "class") + " " + attr(n, "alt") + " " + attr(n, "id"))
		if strings.Contains(hint, "logo") {
			candidate = src
		}
	})
	if candidate == "" {
		return "", fmt.Errorf("no logo image found on page")
	}
	return resolveURL(base, candidate)
}

func resolveURL(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", ref, err)
	}
	return base.ResolveReference(u).String(), nil
}
