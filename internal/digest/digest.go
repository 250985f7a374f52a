// Package digest assembles the delivered brief and posts it to a
// Discord webhook in embed-sized chunks.
package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/aibrief/internal/content"
)

// Digest is the final deliverable of a run.
type Digest struct {
	Title    string   `json:"title"`
	Markdown string   `json:"full_markdown"`
	Chunks   []string `json:"chunks"`
}

// Build prefixes the brief with a coverage header, enforces the embed
// ceiling, and splits the result into postable chunks.
func Build(brief string, items []content.Item, maxEmbedChars int, runDate time.Time) Digest {
	title := "AI Morning Brief — " + runDate.Format("January 2, 2006")

	var tweets, blogs int
	for _, item := range items {
		switch item.Source {
		case content.SourceTwitter:
			tweets++
		case content.SourceBlog:
			blogs++
		}
	}
	header := fmt.Sprintf("*Analyzed %d %s and %d %s.*\n\n",
		tweets, plural(tweets, "tweet", "tweets"),
		blogs, plural(blogs, "blog post", "blog posts"))

	markdown := header + brief
	return Digest{
		Title:    title,
		Markdown: markdown,
		Chunks:   Chunk(markdown, maxEmbedChars),
	}
}

// Chunk splits markdown into pieces of at most max characters,
// preferring to break at paragraph boundaries and never splitting a
// multi-byte character.
func Chunk(markdown string, max int) []string {
	if max <= 0 || len(markdown) <= max {
		return []string{markdown}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(markdown, "\n\n") {
		// A single oversized paragraph gets hard-split.
		for len([]rune(para)) > max {
			runes := []rune(para)
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(current.String()))
				current.Reset()
			}
			chunks = append(chunks, string(runes[:max]))
			para = string(runes[max:])
		}

		candidate := para
		if current.Len() > 0 {
			candidate = current.String() + "\n\n" + para
		}
		if len([]rune(candidate)) > max {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			current.WriteString(para)
			continue
		}
		current.Reset()
		current.WriteString(candidate)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
