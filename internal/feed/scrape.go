package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/extract"
)

// Non-article boilerplate pages, excluded from fallback candidates by
// URL keyword.
var skipKeywords = []string{
	"/about", "/contact", "/terms", "/privacy", "/login", "/signup",
	"/careers", "/jobs", "/subscribe", "/search",
	"/tag/", "/category/", "/page/", "/author/", "/archive",
}

// Caps for the HTML fallback so one archive-heavy index page cannot
// turn into a site crawl.
const (
	maxFallbackPosts      = 5
	maxFallbackCandidates = 20
	minFallbackChars      = 100
)

// scrapeIndex is the fallback for sites without a usable feed: extract
// candidate article links from the index page and keep only those with
// a verifiable in-window publish date. A candidate without a resolvable
// date is excluded, never included by default.
func (c *Collector) scrapeIndex(ctx context.Context, site string, cutoff time.Time) ([]Post, error) {
	resp, err := c.get(ctx, site)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("index %s: status %d", site, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", site, err)
	}

	var posts []Post
	for _, cand := range c.candidateLinks(doc, site) {
		if len(posts) >= maxFallbackPosts {
			break
		}
		post, ok := c.fetchCandidate(ctx, cand, cutoff)
		if !ok {
			continue
		}
		post.SourceBlog = site
		posts = append(posts, post)
	}
	return posts, nil
}

type candidate struct {
	url   string
	title string
}

// candidateLinks collects same-host links from the index page, skipping
// anchors, query links, and boilerplate paths.
func (c *Collector) candidateLinks(doc *goquery.Document, site string) []candidate {
	base, err := url.Parse(site)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var out []candidate
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(out) >= maxFallbackCandidates {
			return false
		}
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return true
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return true
		}
		resolved.Fragment = ""
		full := resolved.String()

		if resolved.Hostname() != base.Hostname() || full == site || seen[full] {
			return true
		}
		if resolved.RawQuery != "" {
			return true
		}
		lower := strings.ToLower(full)
		for _, kw := range skipKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}

		seen[full] = true
		out = append(out, candidate{url: full, title: strings.TrimSpace(s.Text())})
		return true
	})
	return out
}

// fetchCandidate fetches one candidate page and validates it by date.
func (c *Collector) fetchCandidate(ctx context.Context, cand candidate, cutoff time.Time) (Post, bool) {
	resp, err := c.get(ctx, cand.url)
	if err != nil {
		return Post{}, false
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return Post{}, false
	}
	html, err := readBody(resp)
	if err != nil {
		return Post{}, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Post{}, false
	}
	published := DocDate(doc)
	if published.IsZero() {
		slog.Debug("fallback candidate has no verifiable date, skipping", "url", cand.url)
		return Post{}, false
	}
	if published.Before(cutoff) {
		return Post{}, false
	}

	title, text := extract.Article(html, cand.url)
	if len(text) < minFallbackChars {
		return Post{}, false
	}
	if title == "" {
		title = cand.title
	}
	if title == "" {
		title = cand.url
	}

	return Post{
		URL:       cand.url,
		Title:     title,
		Content:   content.Truncate(text, c.maxChars),
		Published: published,
	}, true
}
