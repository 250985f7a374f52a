package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/user/aibrief/internal/content"
)

func TestBuild(t *testing.T) {
	items := []content.Item{
		{Source: content.SourceTwitter},
		{Source: content.SourceTwitter},
		{Source: content.SourceBlog},
	}
	runDate := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	d := Build("## Highlights\n\nBig day for open models.", items, 4096, runDate)

	if d.Title != "AI Morning Brief — March 1, 2024" {
		t.Errorf("title = %q", d.Title)
	}
	if !strings.HasPrefix(d.Markdown, "*Analyzed 2 tweets and 1 blog post.*") {
		t.Errorf("coverage header missing or wrong: %q", d.Markdown)
	}
	if !strings.Contains(d.Markdown, "Big day for open models.") {
		t.Errorf("brief body missing: %q", d.Markdown)
	}
	if len(d.Chunks) != 1 {
		t.Errorf("got %d chunks, want 1", len(d.Chunks))
	}
}

func TestBuildSingularHeader(t *testing.T) {
	items := []content.Item{{Source: content.SourceTwitter}}
	d := Build("x", items, 4096, time.Now())
	if !strings.HasPrefix(d.Markdown, "*Analyzed 1 tweet and 0 blog posts.*") {
		t.Fatalf("header = %q", d.Markdown)
	}
}

func TestChunk(t *testing.T) {
	t.Run("fits in one", func(t *testing.T) {
		chunks := Chunk("short text", 100)
		if len(chunks) != 1 || chunks[0] != "short text" {
			t.Fatalf("got %v", chunks)
		}
	})

	t.Run("splits at paragraph boundary", func(t *testing.T) {
		a := strings.Repeat("a", 60)
		b := strings.Repeat("b", 60)
		chunks := Chunk(a+"\n\n"+b, 100)
		if len(chunks) != 2 {
			t.Fatalf("got %d chunks: %v", len(chunks), chunks)
		}
		if chunks[0] != a || chunks[1] != b {
			t.Fatalf("paragraphs were split mid-text: %v", chunks)
		}
	})

	t.Run("hard splits an oversized paragraph", func(t *testing.T) {
		chunks := Chunk(strings.Repeat("x", 250), 100)
		if len(chunks) != 3 {
			t.Fatalf("got %d chunks: %v", len(chunks), chunks)
		}
		for i, c := range chunks {
			if n := len([]rune(c)); n > 100 {
				t.Fatalf("chunk %d has %d runes", i, n)
			}
		}
	})

	t.Run("never splits a rune", func(t *testing.T) {
		chunks := Chunk(strings.Repeat("é", 150), 100)
		joined := strings.Join(chunks, "")
		if strings.ContainsRune(joined, '�') {
			t.Fatal("chunking produced invalid UTF-8")
		}
		if got := len([]rune(joined)); got != 150 {
			t.Fatalf("lost content: %d runes, want 150", got)
		}
	})

	t.Run("no limit", func(t *testing.T) {
		long := strings.Repeat("y", 500)
		chunks := Chunk(long, 0)
		if len(chunks) != 1 || chunks[0] != long {
			t.Fatalf("max<=0 should pass through, got %d chunks", len(chunks))
		}
	})
}
