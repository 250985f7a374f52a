package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aibrief",
	Short: "Daily AI morning brief pipeline",
	Long:  "Collects AI content from X and blogs, crawls referenced papers and repos, and delivers an LLM-written morning brief to Discord.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
