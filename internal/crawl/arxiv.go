package crawl

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/user/aibrief/internal/content"
)

// Matches both abstract and PDF links, with or without a version
// suffix: arxiv.org/abs/2403.01234, arxiv.org/pdf/2403.01234v2.
var arxivIDPattern = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/(\d+\.\d+)`)

const maxPaperAuthors = 5

func extractArxivID(rawURL string) string {
	m := arxivIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// fetchPaper retrieves paper metadata and abstract from the arXiv
// export API, which answers in Atom.
func (c *Crawler) fetchPaper(ctx context.Context, paperURL string) (*content.CrawledContent, error) {
	id := extractArxivID(paperURL)
	if id == "" {
		return nil, fmt.Errorf("no arXiv id in %s", paperURL)
	}

	query := c.arxivBaseURL + "?id_list=" + url.QueryEscape(id)
	resp, err := c.get(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("arxiv %s: %w", id, err)
	}
	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("arxiv %s: no results", id)
	}
	paper := parsed.Items[0]

	authors := make([]string, 0, maxPaperAuthors)
	for _, a := range paper.Authors {
		if len(authors) >= maxPaperAuthors {
			break
		}
		authors = append(authors, a.Name)
	}

	published := ""
	if paper.PublishedParsed != nil {
		published = paper.PublishedParsed.UTC().Format(time.RFC3339)
	}

	return &content.CrawledContent{
		SourceURL:  paperURL,
		SourceType: content.RefPaper,
		Title:      paper.Title,
		Content:    content.Truncate(paper.Description, c.limits.Paper),
		Metadata: map[string]any{
			"authors":    authors,
			"published":  published,
			"arxiv_id":   id,
			"categories": paper.Categories,
		},
	}, nil
}
