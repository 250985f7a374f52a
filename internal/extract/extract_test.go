package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestArticle(t *testing.T) {
	body := strings.Repeat("This paragraph carries real article text worth keeping. ", 6)
	html := `<html><head><title>Page Title</title></head><body>
		<nav>Home About Contact</nav>
		<article><h1>Page Title</h1><p>` + body + `</p></article>
		<footer>Copyright</footer>
	</body></html>`

	title, text := Article(html, "https://example.com/post")
	if title == "" {
		t.Error("expected a title")
	}
	if !strings.Contains(text, "real article text") {
		t.Errorf("body not extracted: %q", text)
	}
}

func TestArticleEmptyInput(t *testing.T) {
	title, text := Article("", "https://example.com")
	if title != "" || text != "" {
		t.Fatalf("got %q, %q for empty input", title, text)
	}
	title, text = Article("   \n  ", "https://example.com")
	if title != "" || text != "" {
		t.Fatalf("got %q, %q for whitespace input", title, text)
	}
}

func TestFromDocumentFallbackOrder(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "article wins over body",
			html: `<html><body>outside <article>inside article</article></body></html>`,
			want: "inside article",
		},
		{
			name: "main when no article",
			html: `<html><body>outside <main>inside main</main></body></html>`,
			want: "inside main",
		},
		{
			name: "body as last resort",
			html: `<html><body>just body text</body></html>`,
			want: "just body text",
		},
		{
			name: "scripts and chrome stripped",
			html: `<html><body><script>var x;</script><nav>menu</nav><p>content</p><footer>foot</footer></body></html>`,
			want: "content",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tc.html))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := FromDocument(doc); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCollapse(t *testing.T) {
	in := "  first   line  \n\n\n  second\tline \n"
	want := "first line\nsecond line"
	if got := collapse(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
