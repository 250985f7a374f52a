package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/aibrief/internal/config"
	"github.com/user/aibrief/internal/content"
	"github.com/user/aibrief/internal/feed"
)

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "Collect recent blog posts and print them as JSON",
	Long:  "Runs only the blog acquisition layer (feed discovery, ingestion, HTML fallback) against the configured sources. Useful for checking a source before adding it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		sites := cfg.Blogs.Sources
		if len(args) > 0 {
			sites = args
		}
		if len(sites) == 0 {
			return fmt.Errorf("no blog sources configured")
		}

		diags := content.NewDiagnostics()
		collector := feed.NewCollector(cfg.FetchTimeout(), cfg.Crawler.MaxCharsBlog)
		posts := collector.Collect(cmd.Context(), sites, cfg.Cutoff(time.Now()), diags)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(posts); err != nil {
			return err
		}

		for _, entry := range diags.Entries() {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", entry.Subject, entry.Message)
		}
		return nil
	},
}

func init() {
	blogsCmd.Args = cobra.ArbitraryArgs
	rootCmd.AddCommand(blogsCmd)
}
