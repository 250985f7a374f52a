// Package rank orders collected tweets by engagement and surfaces the
// day's trending keywords.
package rank

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/user/aibrief/internal/sources"
)

// Domain terms counted as keywords alongside hashtags.
var aiTerms = []string{
	"llm", "gpt", "claude", "gemini", "transformer", "diffusion",
	"fine-tuning", "rag", "agent", "reasoning", "multimodal",
	"open-source", "benchmark", "rlhf", "moe", "vision",
	"embedding", "tokenizer", "inference", "training",
}

type ScoredTweet struct {
	Tweet sources.Tweet
	Score float64
}

// Top scores every tweet and returns the best n, highest first.
func Top(tweets []sources.Tweet, n int) []ScoredTweet {
	scored := make([]ScoredTweet, 0, len(tweets))
	for _, tw := range tweets {
		scored = append(scored, ScoredTweet{Tweet: tw, Score: Score(tw)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if n > 0 && len(scored) > n {
		scored = scored[:n]
	}
	if len(scored) > 0 {
		slog.Info("ranked tweets", "total", len(tweets), "kept", len(scored), "top_score", scored[0].Score)
	}
	return scored
}

// Score weighs quote tweets and retweets above plain likes: amplifying
// a post signals more than tapping it.
func Score(tw sources.Tweet) float64 {
	return float64(tw.Likes)*1.0 +
		float64(tw.Retweets)*2.0 +
		float64(tw.Replies)*1.5 +
		float64(tw.Quotes)*3.0
}

// TrendingKeywords counts hashtags and known domain terms across the
// ranked tweets and returns the most frequent, capped at limit.
func TrendingKeywords(scored []ScoredTweet, limit int) []string {
	counts := map[string]int{}
	for _, st := range scored {
		for _, tag := range st.Tweet.Hashtags {
			counts[strings.ToLower(tag)]++
		}
		text := strings.ToLower(st.Tweet.Text)
		for _, term := range aiTerms {
			if strings.Contains(text, term) {
				counts[term]++
			}
		}
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
