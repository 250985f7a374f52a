package content

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Item source types
const (
	SourceTwitter = "twitter"
	SourceBlog    = "blog"
)

// Crawled reference source types
const (
	RefPaper      = "paper"
	RefRepository = "repository"
	RefArticle    = "article"
	RefUnknown    = "unknown"
)

// Item unifies a tweet or a blog post for the analysis stages.
type Item struct {
	ID                string           `json:"id"`
	Source            string           `json:"source"` // twitter, blog
	Title             string           `json:"title"`
	Content           string           `json:"content"`
	Author            string           `json:"author"`
	URL               string           `json:"url"`
	Published         time.Time        `json:"published,omitempty"` // zero when unknown
	ReferenceLinks    []string         `json:"reference_links,omitempty"`
	CrawledReferences []CrawledContent `json:"crawled_references,omitempty"`
}

// CrawledContent is the result of resolving one reference link.
// Immutable once produced; owned by the Item that requested it.
type CrawledContent struct {
	SourceURL  string         `json:"source_url"`
	SourceType string         `json:"source_type"` // paper, repository, article, unknown
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// HashID derives a stable item identifier from a URL so re-runs name
// the same post identically.
func HashID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:8])
}
