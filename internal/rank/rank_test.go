package rank

import (
	"reflect"
	"testing"

	"github.com/user/aibrief/internal/sources"
)

func TestScore(t *testing.T) {
	tw := sources.Tweet{Likes: 10, Retweets: 4, Replies: 2, Quotes: 1}
	// 10*1 + 4*2 + 2*1.5 + 1*3
	if got := Score(tw); got != 24 {
		t.Fatalf("Score = %v, want 24", got)
	}
	if got := Score(sources.Tweet{}); got != 0 {
		t.Fatalf("Score of empty tweet = %v, want 0", got)
	}
}

func TestTopOrdersAndCaps(t *testing.T) {
	tweets := []sources.Tweet{
		{ID: "low", Likes: 1},
		{ID: "high", Quotes: 100},
		{ID: "mid", Retweets: 10},
	}

	top := Top(tweets, 2)
	if len(top) != 2 {
		t.Fatalf("got %d tweets, want 2", len(top))
	}
	if top[0].Tweet.ID != "high" || top[1].Tweet.ID != "mid" {
		t.Fatalf("wrong order: %s, %s", top[0].Tweet.ID, top[1].Tweet.ID)
	}

	all := Top(tweets, 0)
	if len(all) != 3 {
		t.Fatalf("n=0 should keep everything, got %d", len(all))
	}
}

func TestTopIsStableForTies(t *testing.T) {
	tweets := []sources.Tweet{
		{ID: "first", Likes: 5},
		{ID: "second", Likes: 5},
	}
	top := Top(tweets, 2)
	if top[0].Tweet.ID != "first" || top[1].Tweet.ID != "second" {
		t.Fatalf("tie broke input order: %s, %s", top[0].Tweet.ID, top[1].Tweet.ID)
	}
}

func TestTrendingKeywords(t *testing.T) {
	scored := []ScoredTweet{
		{Tweet: sources.Tweet{Text: "new LLM benchmark dropped", Hashtags: []string{"AI"}}},
		{Tweet: sources.Tweet{Text: "another llm release", Hashtags: []string{"ai"}}},
		{Tweet: sources.Tweet{Text: "diffusion models are fun"}},
	}

	got := TrendingKeywords(scored, 2)
	want := []string{"ai", "llm"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTrendingKeywordsDeterministicTieBreak(t *testing.T) {
	scored := []ScoredTweet{
		{Tweet: sources.Tweet{Hashtags: []string{"zeta", "alpha"}}},
	}
	got := TrendingKeywords(scored, 0)
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTrendingKeywordsEmpty(t *testing.T) {
	if got := TrendingKeywords(nil, 5); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
