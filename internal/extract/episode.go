package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Episode holds what we can pull off a podcast episode page.
type Episode struct {
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Transcript  string     `json:"transcript,omitempty"`
}

// Textual date shapes the podcast site has used over the years.
var textualDateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-01-02",
}

var textualDateRegex = regexp.MustCompile(
	`(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},\s+\d{4}`)

// ParseEpisode extracts title, publish date, and transcript text from
// an episode page. Title is required; date and transcript are
// best-effort since the site's markup shifts between episodes.
func ParseEpisode(doc *html.Node) (*Episode, error) {
	ep := &Episode{}

	ep.Title = strings.TrimSpace(metaContent(doc, "og:title"))
	if ep.Title == "" {
		walk(doc, func(n *html.Node) {
			if ep.Title != "" || n.Type != html.ElementNode || n.Data != "title" {
				return
			}
			ep.Title = strings.TrimSpace(textContent(n))
		})
	}
	if ep.Title == "" {
		return nil, fmt.Errorf("no episode title found on page")
	}

	ep.PublishedAt = findPublishedAt(doc)
	ep.Transcript = findTranscript(doc)
	return ep, nil
}

// findPublishedAt tries meta tags, then <time datetime>, then textual
// dates anywhere in the page body.
func findPublishedAt(doc *html.Node) *time.Time {
	for _, key := range []string{"article:published_time", "og:article:published_time", "date"} {
		if c := metaContent(doc, key); c != "" {
			if t := parseAnyDate(c); t != nil {
				return t
			}
		}
	}

	var fromTimeEl *time.Time
	walk(doc, func(n *html.Node) {
		if fromTimeEl != nil || n.Type != html.ElementNode || n.Data != "time" {
			return
		}
		if dt := attr(n, "datetime"); dt != "" {
			fromTimeEl = parseAnyDate(dt)
		}
		if fromTimeEl == nil {
			fromTimeEl = parseAnyDate(strings.TrimSpace(textContent(n)))
		}
	})
	if fromTimeEl != nil {
		return fromTimeEl
	}

	if m := textualDateRegex.FindString(textContent(doc)); m != "" {
		return parseAnyDate(m)
	}
	return nil
}

// findTranscript returns the text of the first element whose id or
// class mentions a transcript.
func findTranscript(doc *html.Node) string {
	var transcript string
	walk(doc, func(n *html.Node) {
		if transcript != "" || n.Type != html.ElementNode {
			return
		}
		hint := strings.ToLower(attr(n, "id") + " " + attr(n, "class"))
		if strings.Contains(hint, "transcript") {
			transcript = normalizeWhitespace(textContent(n))
		}
	})
	return transcript
}

func parseAnyDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	for _, layout := range textualDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
