package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/user/aibrief/internal/content"
)

var repoPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/?#]+)`)

type repoResponse struct {
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
}

// fetchRepo retrieves repository metadata and readme text from the
// GitHub REST API. An optional token raises the rate limit; without it
// the unauthenticated quota applies.
func (c *Crawler) fetchRepo(ctx context.Context, repoURL string) (*content.CrawledContent, error) {
	m := repoPattern.FindStringSubmatch(repoURL)
	if m == nil {
		return nil, fmt.Errorf("no owner/name in %s", repoURL)
	}
	owner, name := m[1], m[2]

	select {
	case c.githubGate <- struct{}{}:
		defer func() { <-c.githubGate }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if c.githubToken != "" {
		headers["Authorization"] = "Bearer " + c.githubToken
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/%s", c.githubBaseURL, owner, name), headers)
	if err != nil {
		return nil, err
	}
	var repo repoResponse
	err = json.NewDecoder(resp.Body).Decode(&repo)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("repo %s/%s: %w", owner, name, err)
	}

	title := repo.FullName
	if title == "" {
		title = owner + "/" + name
	}

	return &content.CrawledContent{
		SourceURL:  repoURL,
		SourceType: content.RefRepository,
		Title:      title,
		Content:    c.fetchReadme(ctx, owner, name, headers),
		Metadata: map[string]any{
			"stars":       repo.StargazersCount,
			"forks":       repo.ForksCount,
			"language":    repo.Language,
			"description": repo.Description,
		},
	}, nil
}

// fetchReadme returns the repository readme as raw text, or "" when the
// repository has none. A missing readme is not an error.
func (c *Crawler) fetchReadme(ctx context.Context, owner, name string, headers map[string]string) string {
	rawHeaders := map[string]string{"Accept": "application/vnd.github.v3.raw"}
	if auth, ok := headers["Authorization"]; ok {
		rawHeaders["Authorization"] = auth
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/repos/%s/%s/readme", c.githubBaseURL, owner, name), rawHeaders)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}
	return content.Truncate(string(body), c.limits.Readme)
}
