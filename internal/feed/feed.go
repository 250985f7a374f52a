// Package feed collects recent blog posts: it discovers a site's feed,
// ingests it, and falls back to scraping the index page when no feed is
// usable.
package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/user/aibrief/internal/content"
)

const UserAgent = "Mozilla/5.0 (AI Morning Brief Bot)"

// Feed-supplied bodies shorter than this are assumed to be excerpts and
// replaced with the full article page.
const minEntryChars = 200

// Post is one blog post inside the recency window.
type Post struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Published  time.Time `json:"published"`
	SourceBlog string    `json:"source_blog"`
}

// Collector drives feed discovery, ingestion, and the HTML fallback for
// a configured list of blog sites.
type Collector struct {
	client   *http.Client
	parser   *gofeed.Parser
	maxChars int
}

func NewCollector(timeout time.Duration, maxChars int) *Collector {
	return &Collector{
		client:   &http.Client{Timeout: timeout},
		parser:   gofeed.NewParser(),
		maxChars: maxChars,
	}
}

// Collect gathers in-window posts from every site. A failing site is
// recorded in diags and never aborts the others.
func (c *Collector) Collect(ctx context.Context, sites []string, cutoff time.Time, diags *content.Diagnostics) []Post {
	var all []Post
	for _, site := range sites {
		posts, err := c.collectSite(ctx, site, cutoff)
		if err != nil {
			diags.Record(site, err.Error())
			slog.Warn("blog collection failed", "site", site, "error", err)
			continue
		}
		if len(posts) > 0 {
			slog.Info("collected posts", "site", site, "count", len(posts))
		} else {
			slog.Debug("no new posts", "site", site)
		}
		all = append(all, posts...)
	}
	return all
}

func (c *Collector) collectSite(ctx context.Context, site string, cutoff time.Time) ([]Post, error) {
	if feedURL := c.DiscoverFeed(ctx, site); feedURL != "" {
		posts, err := c.ingestFeed(ctx, feedURL, site, cutoff)
		if err == nil && len(posts) > 0 {
			return posts, nil
		}
		if err != nil {
			slog.Debug("feed ingest failed, falling back to index scrape", "feed", feedURL, "error", err)
		}
	}
	return c.scrapeIndex(ctx, site, cutoff)
}

// get issues a GET with the collector's user agent. Callers own the
// response body.
func (c *Collector) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	return c.client.Do(req)
}

func readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// resolveRef joins a possibly-relative href against a base URL.
func resolveRef(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return b.ResolveReference(ref).String()
}
