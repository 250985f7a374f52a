// Package crawl resolves reference links found in content items:
// papers via the arXiv API, repositories via the GitHub API, and
// everything else as a generic article.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/aibrief/internal/content"
)

// Limits holds per-source-type content ceilings in characters.
type Limits struct {
	Article int
	Paper   int
	Readme  int
}

// Concurrent reference fetches across all items.
const maxConcurrentFetches = 6

// The GitHub API is rate limited, so concurrent access to it gets its
// own smaller gate.
const maxConcurrentGitHub = 2

type Crawler struct {
	client      *http.Client
	limits      Limits
	githubToken string
	githubGate  chan struct{}

	// Overridable in tests.
	arxivBaseURL  string
	githubBaseURL string
}

func New(timeout time.Duration, limits Limits, githubToken string) *Crawler {
	return &Crawler{
		client:        &http.Client{Timeout: timeout},
		limits:        limits,
		githubToken:   githubToken,
		githubGate:    make(chan struct{}, maxConcurrentGitHub),
		arxivBaseURL:  "https://export.arxiv.org/api/query",
		githubBaseURL: "https://api.github.com",
	}
}

// Resolve crawls every item's reference links and returns new items
// with crawled references attached. Links are deduplicated within an
// item; a failing link is recorded in diags and never aborts its
// siblings or other items.
func (c *Crawler) Resolve(ctx context.Context, items []content.Item, diags *content.Diagnostics) []content.Item {
	out := make([]content.Item, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			out[i] = c.resolveItem(gctx, item, diags)
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, item := range out {
		total += len(item.CrawledReferences)
	}
	slog.Info("crawled reference links", "items", len(out), "resolved", total, "failed", diags.Len())
	return out
}

// resolveItem fetches one item's links in order so crawled references
// stay aligned with the reference list.
func (c *Crawler) resolveItem(ctx context.Context, item content.Item, diags *content.Diagnostics) content.Item {
	seen := make(map[string]bool, len(item.ReferenceLinks))
	var refs []content.CrawledContent
	for _, link := range item.ReferenceLinks {
		if seen[link] {
			continue
		}
		seen[link] = true

		crawled, err := c.fetch(ctx, link)
		if err != nil {
			diags.Record(link, err.Error())
			slog.Warn("reference crawl failed", "url", link, "error", err)
			continue
		}
		refs = append(refs, *crawled)
	}
	item.CrawledReferences = refs
	return item
}

func (c *Crawler) fetch(ctx context.Context, url string) (*content.CrawledContent, error) {
	switch Classify(url) {
	case content.RefPaper:
		return c.fetchPaper(ctx, url)
	case content.RefRepository:
		return c.fetchRepo(ctx, url)
	default:
		return c.fetchArticle(ctx, url)
	}
}

func (c *Crawler) get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (AI Morning Brief Bot)")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}
