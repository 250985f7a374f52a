package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/feed"
	"github.com/user/aibrief/internal/rank"
	"github.com/user/aibrief/internal/sources"
)

func TestMerge(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tweets := []rank.ScoredTweet{
		{
			Tweet: sources.Tweet{
				ID:        "111",
				Text:      "big model drop",
				Author:    sources.Author{Username: "karpathy"},
				CreatedAt: created,
				URLs:      []string{"https://arxiv.org/abs/2403.01234"},
			},
			Score: 42,
		},
	}
	posts := []feed.Post{
		{
			URL:        "https://blog.example.com/post",
			Title:      "A post",
			Content:    "body",
			Published:  created,
			SourceBlog: "https://blog.example.com",
		},
	}

	items := Merge(tweets, posts)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	tw := items[0]
	if tw.Source != content.SourceTwitter {
		t.Errorf("source = %q", tw.Source)
	}
	if tw.ID != "111" {
		t.Errorf("id = %q, want native tweet id", tw.ID)
	}
	if tw.URL != "https://x.com/karpathy/status/111" {
		t.Errorf("url = %q", tw.URL)
	}
	if len(tw.ReferenceLinks) != 1 {
		t.Errorf("reference links = %v", tw.ReferenceLinks)
	}

	blog := items[1]
	if blog.Source != content.SourceBlog {
		t.Errorf("source = %q", blog.Source)
	}
	if blog.ID != content.HashID(posts[0].URL) {
		t.Errorf("id = %q, want content hash of URL", blog.ID)
	}
	if blog.Author != "https://blog.example.com" {
		t.Errorf("author = %q", blog.Author)
	}
}

func TestMergeTruncatesLongTweetTitle(t *testing.T) {
	text := strings.Repeat("λ", 150)
	tweets := []rank.ScoredTweet{{Tweet: sources.Tweet{ID: "1", Text: text}}}

	items := Merge(tweets, nil)
	title := items[0].Title
	if !strings.HasSuffix(title, "...") {
		t.Fatalf("long title not elided: %q", title)
	}
	if n := len([]rune(title)); n != 103 {
		t.Fatalf("title rune length = %d, want 103", n)
	}
	if items[0].Content != text {
		t.Fatal("content must keep the full text")
	}
}

func TestMergeStableIDsAcrossRuns(t *testing.T) {
	posts := []feed.Post{{URL: "https://blog.example.com/p"}}
	a := Merge(nil, posts)
	b := Merge(nil, posts)
	if a[0].ID != b[0].ID {
		t.Fatalf("same post got different ids: %q vs %q", a[0].ID, b[0].ID)
	}
}
