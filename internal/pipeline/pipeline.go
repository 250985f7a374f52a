// Package pipeline sequences a full run: collect, rank, merge, crawl,
// analyze, digest, deliver, archive.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/aibrief/internal/analyzer"
	"github.com/user/aibrief/internal/config"
	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/crawl"
	"github.com/user/aibrief/internal/db"
	"github.com/user/aibrief/internal/digest"
	"github.com/user/aibrief/internal/feed"
	"github.com/user/aibrief/internal/rank"
	"github.com/user/aibrief/internal/sources"
)

type Options struct {
	DryRun bool // print the digest instead of delivering it
}

// Run executes the whole pipeline. Acquisition-layer failures degrade
// into diagnostics; only the collector and the LLM stages abort a run.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	runDate := time.Now().UTC()
	cutoff := cfg.Cutoff(runDate)
	diags := content.NewDiagnostics()

	slog.Info("starting run", "cutoff", cutoff.Format(time.RFC3339))

	twitter := sources.NewTwitterClient(cfg.Collector.BearerToken, 30*time.Second)
	tweets, err := twitter.FetchAccountTweets(ctx, cfg.Collector.Accounts, cutoff, cfg.Collector.FetchLimit)
	if err != nil {
		return fmt.Errorf("collector: %w", err)
	}
	slog.Info("collected tweets", "count", len(tweets))

	top := rank.Top(tweets, cfg.Collector.TopTweets)
	keywords := rank.TrendingKeywords(top, 10)

	collector := feed.NewCollector(cfg.FetchTimeout(), cfg.Crawler.MaxCharsBlog)
	posts := collector.Collect(ctx, cfg.Blogs.Sources, cutoff, diags)

	items := Merge(top, posts)
	if len(items) == 0 {
		return fmt.Errorf("nothing collected: no tweets or blog posts in window")
	}

	crawler := crawl.New(cfg.FetchTimeout(), crawl.Limits{
		Article: cfg.Crawler.MaxCharsBlog,
		Paper:   cfg.Crawler.MaxCharsPaper,
		Readme:  cfg.Crawler.MaxCharsReadme,
	}, cfg.Crawler.GitHubToken)
	items = crawler.Resolve(ctx, items, diags)

	llm := analyzer.New(
		cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.ResolveAPIKey(), cfg.LLM.BaseURL,
		cfg.LLM.MaxTokens, cfg.LLM.BatchSize,
	)
	analysis, err := llm.Analyze(ctx, items)
	if err != nil {
		return fmt.Errorf("analyzer: %w", err)
	}

	brief, err := llm.Brief(ctx, analysis, itemURLs(items), keywords, runDate)
	if err != nil {
		return fmt.Errorf("summarizer: %w", err)
	}

	d := digest.Build(brief, items, cfg.Delivery.MaxEmbedChars, runDate)

	if opts.DryRun {
		slog.Info("dry run, skipping delivery")
		fmt.Println(d.Markdown)
		return nil
	}

	hook := digest.NewWebhook(cfg.Delivery.WebhookURL, 15*time.Second)
	if err := hook.Deliver(ctx, d); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}

	archive(cfg, d, runDate, len(items), diags)

	for _, entry := range diags.Entries() {
		slog.Warn("degraded during run", "subject", entry.Subject, "message", entry.Message)
	}
	slog.Info("run complete", "items", len(items), "diagnostics", diags.Len())
	return nil
}

// archive is best effort: a broken local archive must not fail a
// delivered run.
func archive(cfg *config.Config, d digest.Digest, runDate time.Time, items int, diags *content.Diagnostics) {
	store, err := db.NewStore(cfg.DBPath())
	if err != nil {
		slog.Warn("run archive unavailable", "error", err)
		return
	}
	defer store.Close()

	err = store.SaveRun(&db.Run{
		Date:        runDate,
		Title:       d.Title,
		Markdown:    d.Markdown,
		Items:       items,
		Diagnostics: diags.Entries(),
	})
	if err != nil {
		slog.Warn("could not archive run", "error", err)
	}
}

func itemURLs(items []content.Item) map[string]string {
	urls := make(map[string]string, len(items))
	for _, item := range items {
		urls[item.ID] = item.URL
	}
	return urls
}
