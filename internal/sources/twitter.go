// Package sources fetches upstream social content, currently tweets
// from a configured list of accounts via the X API v2 recent search.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const searchEndpoint = "/2/tweets/search/recent"

// The API rejects queries longer than this.
const maxQueryLength = 512

const (
	tweetFields = "created_at,public_metrics,entities"
	userFields  = "id,username,name,public_metrics"
	expansions  = "author_id"
)

type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Followers int    `json:"followers_count"`
}

type Tweet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Retweets  int       `json:"retweet_count"`
	Replies   int       `json:"reply_count"`
	Likes     int       `json:"like_count"`
	Quotes    int       `json:"quote_count"`
	URLs      []string  `json:"urls,omitempty"`
	Hashtags  []string  `json:"hashtags,omitempty"`
}

type TwitterClient struct {
	client  *http.Client
	token   string
	baseURL string
}

func NewTwitterClient(token string, timeout time.Duration) *TwitterClient {
	return &TwitterClient{
		client:  &http.Client{Timeout: timeout},
		token:   token,
		baseURL: "https://api.twitter.com",
	}
}

// FetchAccountTweets pulls recent non-retweet posts from the given
// accounts since the cutoff, batching accounts so each query stays
// under the API's length limit. A failing batch is logged and skipped.
func (t *TwitterClient) FetchAccountTweets(ctx context.Context, accounts []string, cutoff time.Time, limit int) ([]Tweet, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	batches := batchAccounts(accounts, maxQueryLength)
	slog.Debug("batched accounts for search", "accounts", len(accounts), "batches", len(batches))

	var all []Tweet
	for i, batch := range batches {
		clauses := make([]string, len(batch))
		for j, account := range batch {
			clauses[j] = "from:" + account
		}
		query := "(" + strings.Join(clauses, " OR ") + ") -is:retweet"

		tweets, err := t.search(ctx, query, cutoff, limit)
		if err != nil {
			if len(batches) == 1 {
				return nil, err
			}
			slog.Warn("tweet batch failed", "batch", i+1, "error", err)
			continue
		}
		all = append(all, tweets...)
	}
	return dedupeTweets(all), nil
}

// batchAccounts splits accounts into groups whose combined query fits
// under maxLen.
func batchAccounts(accounts []string, maxLen int) [][]string {
	const overhead = len("() -is:retweet")
	var batches [][]string
	var current []string
	length := overhead

	for _, account := range accounts {
		clause := len("from:") + len(account)
		if len(current) > 0 {
			clause += len(" OR ")
		}
		if length+clause > maxLen && len(current) > 0 {
			batches = append(batches, current)
			current = nil
			length = overhead
			clause = len("from:") + len(account)
		}
		current = append(current, account)
		length += clause
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

func (t *TwitterClient) search(ctx context.Context, query string, cutoff time.Time, limit int) ([]Tweet, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(min(100, limit)))
	params.Set("start_time", cutoff.UTC().Format("2006-01-02T15:04:05Z"))
	params.Set("sort_order", "recency")
	params.Set("tweet.fields", tweetFields)
	params.Set("user.fields", userFields)
	params.Set("expansions", expansions)

	var all []Tweet
	for len(all) < limit {
		page, next, err := t.searchPage(ctx, params)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if next == "" {
			break
		}
		params.Set("pagination_token", next)
	}
	return all, nil
}

type searchResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		AuthorID      string    `json:"author_id"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			LikeCount    int `json:"like_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
		Entities struct {
			URLs []struct {
				ExpandedURL string `json:"expanded_url"`
			} `json:"urls"`
			Hashtags []struct {
				Tag string `json:"tag"`
			} `json:"hashtags"`
		} `json:"entities"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID            string `json:"id"`
			Username      string `json:"username"`
			Name          string `json:"name"`
			PublicMetrics struct {
				FollowersCount int `json:"followers_count"`
			} `json:"public_metrics"`
		} `json:"users"`
	} `json:"includes"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

func (t *TwitterClient) searchPage(ctx context.Context, params url.Values) ([]Tweet, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("tweet search: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", err
	}

	authors := make(map[string]Author, len(body.Includes.Users))
	for _, u := range body.Includes.Users {
		authors[u.ID] = Author{
			ID:        u.ID,
			Username:  u.Username,
			Name:      u.Name,
			Followers: u.PublicMetrics.FollowersCount,
		}
	}

	tweets := make([]Tweet, 0, len(body.Data))
	for _, d := range body.Data {
		author, ok := authors[d.AuthorID]
		if !ok {
			author = Author{ID: d.AuthorID, Username: "unknown", Name: "Unknown"}
		}
		urls := make([]string, 0, len(d.Entities.URLs))
		for _, u := range d.Entities.URLs {
			if u.ExpandedURL != "" {
				urls = append(urls, u.ExpandedURL)
			}
		}
		tags := make([]string, 0, len(d.Entities.Hashtags))
		for _, h := range d.Entities.Hashtags {
			tags = append(tags, h.Tag)
		}
		tweets = append(tweets, Tweet{
			ID:        d.ID,
			Text:      d.Text,
			Author:    author,
			CreatedAt: d.CreatedAt,
			Retweets:  d.PublicMetrics.RetweetCount,
			Replies:   d.PublicMetrics.ReplyCount,
			Likes:     d.PublicMetrics.LikeCount,
			Quotes:    d.PublicMetrics.QuoteCount,
			URLs:      urls,
			Hashtags:  tags,
		})
	}
	return tweets, body.Meta.NextToken, nil
}

func dedupeTweets(tweets []Tweet) []Tweet {
	seen := make(map[string]bool, len(tweets))
	out := make([]Tweet, 0, len(tweets))
	for _, tw := range tweets {
		if seen[tw.ID] {
			continue
		}
		seen[tw.ID] = true
		out = append(out, tw)
	}
	return out
}
