package config

import (
	"testing"
	"time"
)

func TestCutoff(t *testing.T) {
	now := time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC)

	cfg := &Config{}
	cfg.Collector.RecencyHours = 24
	if got := cfg.Cutoff(now); !got.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("got %v", got)
	}

	cfg.Collector.RecencyHours = 0
	if got := cfg.Cutoff(now); !got.Equal(now.Add(-24 * time.Hour)) {
		t.Fatalf("zero hours should default to 24, got %v", got)
	}

	cfg.Collector.RecencyHours = 48
	if got := cfg.Cutoff(now); !got.Equal(now.Add(-48 * time.Hour)) {
		t.Fatalf("got %v", got)
	}
}

func TestFetchTimeout(t *testing.T) {
	cfg := &Config{}
	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Fatalf("default timeout = %v, want 10s", got)
	}
	cfg.Crawler.TimeoutSeconds = 3
	if got := cfg.FetchTimeout(); got != 3*time.Second {
		t.Fatalf("got %v, want 3s", got)
	}
}

func TestResolveAPIKey(t *testing.T) {
	l := LLMConfig{APIKey: "explicit"}
	if got := l.ResolveAPIKey(); got != "explicit" {
		t.Fatalf("got %q", got)
	}

	t.Setenv("ANTHROPIC_API_KEY", "from-anthropic-env")
	t.Setenv("OPENAI_API_KEY", "from-openai-env")
	t.Setenv("OPENROUTER_API_KEY", "from-openrouter-env")

	cases := []struct {
		provider string
		want     string
	}{
		{"anthropic", "from-anthropic-env"},
		{"openai", "from-openai-env"},
		{"openrouter", "from-openrouter-env"},
		{"", "from-openai-env"},
	}
	for _, tc := range cases {
		l := LLMConfig{Provider: tc.provider}
		if got := l.ResolveAPIKey(); got != tc.want {
			t.Errorf("provider %q: got %q, want %q", tc.provider, got, tc.want)
		}
	}
}
