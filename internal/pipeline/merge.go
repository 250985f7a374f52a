package pipeline

import (
	"fmt"

	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/feed"
	"github.com/user/aibrief/internal/rank"
)

// Merge unifies ranked tweets and blog posts into content items, ranked
// tweets first. IDs are source-native for tweets and content-hashed for
// posts so a re-run names the same items identically.
func Merge(tweets []rank.ScoredTweet, posts []feed.Post) []content.Item {
	items := make([]content.Item, 0, len(tweets)+len(posts))

	for _, st := range tweets {
		tw := st.Tweet
		title := tw.Text
		if len([]rune(title)) > 100 {
			title = string([]rune(title)[:100]) + "..."
		}
		items = append(items, content.Item{
			ID:             tw.ID,
			Source:         content.SourceTwitter,
			Title:          title,
			Content:        tw.Text,
			Author:         tw.Author.Username,
			URL:            fmt.Sprintf("https://x.com/%s/status/%s", tw.Author.Username, tw.ID),
			Published:      tw.CreatedAt,
			ReferenceLinks: tw.URLs,
		})
	}

	for _, post := range posts {
		items = append(items, content.Item{
			ID:        content.HashID(post.URL),
			Source:    content.SourceBlog,
			Title:     post.Title,
			Content:   post.Content,
			Author:    post.SourceBlog,
			URL:       post.URL,
			Published: post.Published,
		})
	}

	return items
}
