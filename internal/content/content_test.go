package content

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hello"},
		{"no limit", strings.Repeat("x", 100), 0, strings.Repeat("x", 100)},
		{"negative limit", "hello", -1, "hello"},
		{"empty", "", 5, ""},
		{"multibyte", "héllo wörld", 7, "héllo w"},
		{"cjk", "日本語のテキスト", 3, "日本語"},
		{"emoji", "🚀🚀🚀🚀", 2, "🚀🚀"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Truncate(tc.in, tc.max)
			if got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
			// Never produce invalid UTF-8 by cutting mid-rune.
			for _, r := range got {
				if r == '�' {
					t.Fatalf("result contains replacement character: %q", got)
				}
			}
		})
	}
}

func TestHashIDStable(t *testing.T) {
	a := HashID("https://example.com/post")
	b := HashID("https://example.com/post")
	if a != b {
		t.Fatalf("same URL hashed differently: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("hash length = %d, want 16", len(a))
	}
	if HashID("https://example.com/other") == a {
		t.Fatal("different URLs produced the same hash")
	}
}

func TestDiagnosticsConcurrentRecord(t *testing.T) {
	d := NewDiagnostics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d.Record(fmt.Sprintf("subject-%d", n), "failed")
		}(i)
	}
	wg.Wait()

	if d.Len() != 50 {
		t.Fatalf("got %d entries, want 50", d.Len())
	}
}

func TestDiagnosticsEntriesIsCopy(t *testing.T) {
	d := NewDiagnostics()
	d.Record("a", "one")

	entries := d.Entries()
	entries[0].Message = "mutated"

	if got := d.Entries()[0].Message; got != "one" {
		t.Fatalf("internal entry mutated through copy: %q", got)
	}
}
