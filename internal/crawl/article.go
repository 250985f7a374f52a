package crawl

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/extract"
)

// fetchArticle handles every reference that is neither a paper nor a
// repository: fetch the page and extract its readable text.
func (c *Crawler) fetchArticle(ctx context.Context, articleURL string) (*content.CrawledContent, error) {
	resp, err := c.get(ctx, articleURL, nil)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	title, text := extract.Article(string(body), articleURL)
	if text == "" {
		return nil, fmt.Errorf("%s: no extractable content", articleURL)
	}

	domain := ""
	if u, err := url.Parse(articleURL); err == nil {
		domain = u.Hostname()
	}

	return &content.CrawledContent{
		SourceURL:  articleURL,
		SourceType: content.RefArticle,
		Title:      title,
		Content:    content.Truncate(text, c.limits.Article),
		Metadata:   map[string]any{"domain": domain},
	}, nil
}
