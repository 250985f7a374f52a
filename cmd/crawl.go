package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/aibrief/internal/config"
	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/crawl"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl URL...",
	Short: "Resolve reference URLs and print the crawled content as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		diags := content.NewDiagnostics()
		crawler := crawl.New(cfg.FetchTimeout(), crawl.Limits{
			Article: cfg.Crawler.MaxCharsBlog,
			Paper:   cfg.Crawler.MaxCharsPaper,
			Readme:  cfg.Crawler.MaxCharsReadme,
		}, cfg.Crawler.GitHubToken)

		item := content.Item{ID: "cli", ReferenceLinks: args}
		resolved := crawler.Resolve(cmd.Context(), []content.Item{item}, diags)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resolved[0].CrawledReferences); err != nil {
			return err
		}

		for _, entry := range diags.Entries() {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", entry.Subject, entry.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}
