package crawl

import (
	"net/url"
	"strings"

	"github.com/user/aibrief/internal/content"
)

// Classify maps a reference URL to a source type by host. Pure and
// total: anything that is not a paper or a repository is an article.
func Classify(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return content.RefArticle
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "arxiv.org"):
		return content.RefPaper
	case strings.Contains(host, "github.com"):
		return content.RefRepository
	default:
		return content.RefArticle
	}
}
