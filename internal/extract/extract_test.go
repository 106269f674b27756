package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestFetchHTML(t *testing.T) {
	t.Run("fetches and parses a page", func(t *testing.T) {
		srv := serveHTML(t, `<html><head><title>Acme</title></head><body></body></html>`)

		f := NewFetcher(srv.Client())
		doc, base, err := f.FetchHTML(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc == nil {
			t.Fatal("expected parsed document")
		}
		if base.Host == "" {
			t.Fatal("expected base URL with host")
		}
	})

	t.Run("nil http client gets a default with a timeout", func(t *testing.T) {
		srv := serveHTML(t, `<html><head><title>Acme</title></head><body></body></html>`)

		// Production wiring passes nil and relies on the default client.
		f := NewFetcher(nil)
		if f.httpClient == nil || f.httpClient.Timeout == 0 {
			t.Fatal("expected a default http client with a timeout")
		}
		if _, _, err := f.FetchHTML(context.Background(), srv.URL); err != nil {
			t.Fatalf("fetch with default client failed: %v", err)
		}
	})

	t.Run("rejects non-http URLs", func(t *testing.T) {
		f := NewFetcher(http.DefaultClient)
		if _, _, err := f.FetchHTML(context.Background(), "ftp://example.com/logo"); err == nil {
			t.Fatal("expected error for non-http scheme")
		}
	})

	t.Run("rejects non-200 responses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		if _, _, err := f.FetchHTML(context.Background(), srv.URL); err == nil {
			t.Fatal("expected error for 404 response")
		}
	})
}

func TestLogo(t *testing.T) {
	t.Run("prefers og:image", func(t *testing.T) {
		srv := serveHTML(t, `<html><head>
			<meta property="og:image" content="https://cdn.example.com/og.png">
			<meta name="twitter:image" content="https://cdn.example.com/tw.png">
		</head><body><img src="/assets/logo.svg" class="logo"></body></html>`)

		f := NewFetcher(srv.Client())
		doc, base, err := f.FetchHTML(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := Logo(doc, base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://cdn.example.com/og.png" {
			t.Errorf("expected og:image URL, got %q", got)
		}
	})

	t.Run("falls back to twitter:image", func(t *testing.T) {
		doc := parseHTML(t, `<html><head>
			<meta name="twitter:image" content="https://cdn.example.com/tw.png">
		</head><body></body></html>`)

		got, err := Logo(doc, mustURL(t, "https://example.com/about"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://cdn.example.com/tw.png" {
			t.Errorf("expected twitter:image URL, got %q", got)
		}
	})

	t.Run("falls back to img tag that looks like a logo", func(t *testing.T) {
		doc := parseHTML(t, `<html><body>
			<img src="/assets/hero.jpg" alt="team photo">
			<img src="/assets/mark.svg" alt="Acme logo">
		</body></html>`)

		got, err := Logo(doc, mustURL(t, "https://example.com/about"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://example.com/assets/mark.svg" {
			t.Errorf("expected resolved logo URL, got %q", got)
		}
	})

	t.Run("resolves relative meta URLs against the page", func(t *testing.T) {
		doc := parseHTML(t, `<html><head>
			<meta property="og:image" content="/static/og.png">
		</head></html>`)

		got, err := Logo(doc, mustURL(t, "https://example.com/company/acme"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://example.com/static/og.png" {
			t.Errorf("expected resolved URL, got %q", got)
		}
	})

	t.Run("errors when nothing looks like a logo", func(t *testing.T) {
		doc := parseHTML(t, `<html><body><img src="/assets/hero.jpg"></body></html>`)

		if _, err := Logo(doc, mustURL(t, "https://example.com")); err == nil {
			t.Fatal("expected error for page without a logo")
		}
	})
}

func TestParseEpisode(t *testing.T) {
	t.Run("full episode page", func(t *testing.T) {
		doc := parseHTML(t, `<html><head>
			<meta property="og:title" content="Ep 42: Building in Public">
			<meta property="article:published_time" content="2025-03-14T09:00:00Z">
		</head><body>
			<div class="episode-transcript">
				<p>Welcome back to the show.</p>
				<p>Today we talk about building in public.</p>
			</div>
		</body></html>`)

		ep, err := ParseEpisode(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.Title != "Ep 42: Building in Public" {
			t.Errorf("unexpected title %q", ep.Title)
		}
		if ep.PublishedAt == nil {
			t.Fatal("expected publish date")
		}
		want := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
		if !ep.PublishedAt.Equal(want) {
			t.Errorf("expected %v, got %v", want, ep.PublishedAt)
		}
		if !strings.Contains(ep.Transcript, "building in public") {
			t.Errorf("unexpected transcript %q", ep.Transcript)
		}
	})

	t.Run("title falls back to title tag", func(t *testing.T) {
		doc := parseHTML(t, `<html><head><title>Ep 7</title></head><body></body></html>`)

		ep, err := ParseEpisode(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.Title != "Ep 7" {
			t.Errorf("unexpected title %q", ep.Title)
		}
	})

	t.Run("date from time element datetime", func(t *testing.T) {
		doc := parseHTML(t, `<html><head><title>Ep 8</title></head><body>
			<time datetime="2024-11-02T00:00:00Z">November 2, 2024</time>
		</body></html>`)

		ep, err := ParseEpisode(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.PublishedAt == nil {
			t.Fatal("expected publish date")
		}
		if ep.PublishedAt.Year() != 2024 || ep.PublishedAt.Month() != time.November {
			t.Errorf("unexpected date %v", ep.PublishedAt)
		}
	})

	t.Run("date from textual body content", func(t *testing.T) {
		doc := parseHTML(t, `<html><head><title>Ep 9</title></head><body>
			<p>Published on January 5, 2026 with our guest.</p>
		</body></html>`)

		ep, err := ParseEpisode(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.PublishedAt == nil {
			t.Fatal("expected publish date")
		}
		if ep.PublishedAt.Year() != 2026 || ep.PublishedAt.Day() != 5 {
			t.Errorf("unexpected date %v", ep.PublishedAt)
		}
	})

	t.Run("missing date and transcript are tolerated", func(t *testing.T) {
		doc := parseHTML(t, `<html><head><title>Ep 10</title></head><body><p>Show notes.</p></body></html>`)

		ep, err := ParseEpisode(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.PublishedAt != nil {
			t.Errorf("expected no publish date, got %v", ep.PublishedAt)
		}
		if ep.Transcript != "" {
			t.Errorf("expected empty transcript, got %q", ep.Transcript)
		}
	})

	t.Run("missing title is an error", func(t *testing.T) {
		doc := parseHTML(t, `<html><body><p>nothing here</p></body></html>`)

		if _, err := ParseEpisode(doc); err == nil {
			t.Fatal("expected error for page without a title")
		}
	})
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}
	return u
}
