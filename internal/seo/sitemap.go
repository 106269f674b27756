// Package seo renders the crawl surface of the public site: the XML
// sitemap and robots.txt. Both are generated from live portfolio data
// so new company and episode pages get indexed without a deploy.
package seo

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"meridian/internal/models"
)

// staticPages are the fixed marketing pages, in crawl-priority order.
var staticPages = []string{
	"/",
	"/portfolio",
	"/podcast",
	"/about",
	"/contact",
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders the sitemap.xml document. Only publicly visible
// companies (active or exited) and guests with a published episode get
// entries.
func Sitemap(baseURL string, companies []models.Company, guests []models.Guest) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, urlEntry{Loc: base + p})
	}
	for _, c := range companies {
		if c.Status != models.CompanyActive && c.Status != models.CompanyExited {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:     fmt.Sprintf("%s/portfolio/%s", base, c.Slug),
			LastMod: lastModOrNow(c.UpdatedAt).UTC().Format("2006-01-02"),
		})
	}
	for _, g := range guests {
		if g.EpisodeSlug == "" || g.EpisodePublishedAt == nil {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{
			Loc:     fmt.Sprintf("%s/podcast/%s", base, g.EpisodeSlug),
			LastMod: g.EpisodePublishedAt.UTC().Format("2006-01-02"),
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt. The admin surface and the API are kept
// out of the index; everything else is crawlable.
func Robots(baseURL string) []byte {
	base := strings.TrimRight(baseURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /portal\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", base)
	return []byte(b.String())
}

// lastModOrNow guards against zero timestamps on freshly seeded rows.
func lastModOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
