package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/aibrief/internal/config"
	"github.com/user/aibrief/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previously delivered briefs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return tui.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
