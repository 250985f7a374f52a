package feed

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Conventional feed locations probed before falling back to the site's
// own <link rel="alternate"> declaration.
var feedPaths = []string{"/feed", "/rss", "/atom.xml", "/feed.xml", "/index.xml", "/rss.xml"}

var feedContentTypes = []string{"xml", "rss", "atom", "text"}

// DiscoverFeed locates a machine-readable feed for a site root. It
// probes the conventional paths with cheap HEAD requests, then scans the
// root HTML for a feed declaration. Returns "" when nothing works; an
// erroring candidate is treated as not found, never as a failure.
func (c *Collector) DiscoverFeed(ctx context.Context, site string) string {
	for _, path := range feedPaths {
		feedURL := resolveRef(site, path)
		if feedURL == "" {
			continue
		}
		if c.probeFeed(ctx, feedURL) {
			return feedURL
		}
	}
	return c.feedFromHTML(ctx, site)
}

func (c *Collector) probeFeed(ctx context.Context, feedURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, feedURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	for _, t := range feedContentTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

func (c *Collector) feedFromHTML(ctx context.Context, site string) string {
	resp, err := c.get(ctx, site)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	var found string
	doc.Find("link[rel='alternate']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		linkType, _ := s.Attr("type")
		linkType = strings.ToLower(linkType)
		if !strings.Contains(linkType, "rss") && !strings.Contains(linkType, "atom") && !strings.Contains(linkType, "xml") {
			return true
		}
		href, _ := s.Attr("href")
		if href == "" {
			return true
		}
		found = resolveRef(site, href)
		return false
	})
	return found
}
