package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/aibrief/internal/config"
	"github.com/user/aibrief/internal/pipeline"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and deliver the brief",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return pipeline.Run(cmd.Context(), cfg, pipeline.Options{DryRun: dryRun})
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the digest instead of delivering it")
	rootCmd.AddCommand(runCmd)
}
