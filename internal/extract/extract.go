// Package extract pulls readable article text out of raw HTML.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Article extracts the title and body text of an HTML page. It runs a
// readability-style extractor first and falls back to the largest
// conventional content container (<article>, then <main>, then <body>)
// when readability yields nothing.
func Article(html string, pageURL string) (title, text string) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", ""
	}

	if parsed, err := url.Parse(pageURL); err == nil {
		if art, err := readability.FromReader(strings.NewReader(html), parsed); err == nil {
			title = strings.TrimSpace(art.Title)
			text = strings.TrimSpace(art.TextContent)
			if text != "" {
				return title, text
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return title, ""
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return title, FromDocument(doc)
}

// FromDocument applies the DOM-heuristic fallback to an already-parsed
// document: first <article>, then <main>, then <body>.
func FromDocument(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer").Remove()
	for _, sel := range []string{"article", "main", "body"} {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := collapse(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			out = append(out, strings.Join(fields, " "))
		}
	}
	return strings.Join(out, "\n")
}
