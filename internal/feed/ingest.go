package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/extract"
)

// ingestFeed parses a discovered feed into posts inside the recency
// window. Entries without a resolvable publish date are excluded, same
// as in the HTML fallback: feeds carry stale and missing dates too.
func (c *Collector) ingestFeed(ctx context.Context, feedURL, site string, cutoff time.Time) ([]Post, error) {
	resp, err := c.get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("feed %s: status %d", feedURL, resp.StatusCode)
	}

	parsed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", feedURL, err)
	}

	var posts []Post
	for _, item := range parsed.Items {
		published := EntryDate(item)
		if published.IsZero() || published.Before(cutoff) {
			continue
		}

		link := strings.TrimSpace(item.Link)
		if link != "" {
			link = resolveRef(site, link)
		}
		body := entryText(item)

		// Excerpt-only feeds: substitute the full article page.
		if len(body) < minEntryChars && link != "" {
			if page, err := c.fetchPageText(ctx, link); err == nil && page != "" {
				body = page
			}
		}

		if item.Title == "" && body == "" {
			continue
		}
		url := link
		if url == "" {
			url = site
		}
		posts = append(posts, Post{
			URL:        url,
			Title:      strings.TrimSpace(item.Title),
			Content:    content.Truncate(body, c.maxChars),
			Published:  published,
			SourceBlog: site,
		})
	}
	return posts, nil
}

// entryText prefers the entry's full content block over its summary and
// strips any embedded HTML.
func entryText(item *gofeed.Item) string {
	raw := item.Content
	if raw == "" {
		raw = item.Description
	}
	if raw == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return strings.Join(lines, "\n")
}

// fetchPageText pulls the readable body of an article page.
func (c *Collector) fetchPageText(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return "", fmt.Errorf("page %s: status %d", url, resp.StatusCode)
	}
	html, err := readBody(resp)
	if err != nil {
		return "", err
	}
	_, text := extract.Article(html, url)
	return text, nil
}
