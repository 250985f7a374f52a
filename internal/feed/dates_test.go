package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

func TestEntryDatePrefersPublished(t *testing.T) {
	published := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	item := &gofeed.Item{PublishedParsed: &published, UpdatedParsed: &updated}
	if got := EntryDate(item); !got.Equal(published) {
		t.Fatalf("got %v, want %v", got, published)
	}

	item = &gofeed.Item{UpdatedParsed: &updated}
	if got := EntryDate(item); !got.Equal(updated) {
		t.Fatalf("got %v, want %v", got, updated)
	}

	if got := EntryDate(&gofeed.Item{}); !got.IsZero() {
		t.Fatalf("expected zero time for dateless entry, got %v", got)
	}
}

func TestEntryDateNormalizesTimezone(t *testing.T) {
	// 12:00 at +05:00 is 07:00 UTC; the declared offset must not leak
	// into the result.
	offset := time.FixedZone("", 5*3600)
	published := time.Date(2023, 1, 1, 12, 0, 0, 0, offset)

	got := EntryDate(&gofeed.Item{PublishedParsed: &published})
	want := time.Date(2023, 1, 1, 7, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "rfc3339",
			in:   "2024-03-01T08:30:00+02:00",
			want: time.Date(2024, 3, 1, 6, 30, 0, 0, time.UTC),
		},
		{
			name: "date only",
			in:   "2024-03-01",
			want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc1123z",
			in:   "Fri, 01 Mar 2024 08:30:00 +0000",
			want: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "garbage",
			in:   "not a date",
			want: time.Time{},
		},
		{
			name: "empty",
			in:   "",
			want: time.Time{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDate(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDocDate(t *testing.T) {
	cases := []struct {
		name string
		html string
		want time.Time
	}{
		{
			name: "article published_time property",
			html: `<html><head><meta property="article:published_time" content="2024-03-01T08:00:00Z"></head></html>`,
			want: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "og published_time",
			html: `<html><head><meta property="og:published_time" content="2024-03-01"></head></html>`,
			want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "name attribute variant",
			html: `<html><head><meta name="date" content="2024-02-15"></head></html>`,
			want: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "json-ld preferred over meta",
			html: `<html><head>
				<script type="application/ld+json">{"@type":"Article","datePublished":"2024-01-10T10:00:00Z"}</script>
				<meta property="article:published_time" content="2024-03-01T08:00:00Z">
			</head></html>`,
			want: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "json-ld graph",
			html: `<html><head><script type="application/ld+json">{"@graph":[{"@type":"WebPage"},{"@type":"Article","datePublished":"2024-01-11"}]}</script></head></html>`,
			want: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "time element datetime",
			html: `<html><body><time datetime="2024-03-05T12:00:00Z">March 5</time></body></html>`,
			want: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "no signal returns zero",
			html: `<html><head><title>Hello</title></head><body><p>text</p></body></html>`,
			want: time.Time{},
		},
		{
			name: "unparseable meta ignored",
			html: `<html><head><meta property="article:published_time" content="yesterday"></head></html>`,
			want: time.Time{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tc.html))
			if err != nil {
				t.Fatalf("parse html: %v", err)
			}
			got := DocDate(doc)
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
