package feed

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Meta tag names probed in order when a page carries no structured
// publish date. Matched against both property= and name= attributes.
var metaDateNames = []string{
	"article:published_time",
	"og:published_time",
	"article:modified_time",
	"og:updated_time",
	"parsely-pub-date",
	"sailthru.date",
	"dc.date",
	"dcterms.date",
	"publish-date",
	"date",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"2 January 2006",
}

// EntryDate resolves a feed entry's publish time in UTC, preferring the
// published field over updated. Returns the zero time when the entry
// carries neither.
func EntryDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}

// DocDate resolves a page's publish time from structured metadata:
// JSON-LD datePublished first, then the known meta tag names in order.
// Returns the zero time rather than guessing when no signal is present.
func DocDate(doc *goquery.Document) time.Time {
	if t := jsonLDDate(doc); !t.IsZero() {
		return t
	}

	for _, name := range metaDateNames {
		sel := "meta[property='" + name + "'], meta[name='" + name + "']"
		val, ok := doc.Find(sel).First().Attr("content")
		if !ok {
			continue
		}
		if t := ParseDate(val); !t.IsZero() {
			return t
		}
	}

	if val, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t := ParseDate(val); !t.IsZero() {
			return t
		}
	}

	return time.Time{}
}

// ParseDate tries the known layouts in order and returns the first
// parseable value normalized to UTC.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func jsonLDDate(doc *goquery.Document) time.Time {
	var found time.Time
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		if t := findDatePublished(raw, 0); !t.IsZero() {
			found = t
			return false
		}
		return true
	})
	return found
}

// findDatePublished walks a decoded JSON-LD value looking for a
// datePublished key, descending into @graph arrays.
func findDatePublished(v any, depth int) time.Time {
	if depth > 3 {
		return time.Time{}
	}
	switch node := v.(type) {
	case map[string]any:
		if s, ok := node["datePublished"].(string); ok {
			if t := ParseDate(s); !t.IsZero() {
				return t
			}
		}
		if graph, ok := node["@graph"]; ok {
			if t := findDatePublished(graph, depth+1); !t.IsZero() {
				return t
			}
		}
	case []any:
		for _, item := range node {
			if t := findDatePublished(item, depth+1); !t.IsZero() {
				return t
			}
		}
	}
	return time.Time{}
}
