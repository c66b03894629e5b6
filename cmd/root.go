package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "techpulse",
	Short: "Aggregate, filter and rank tech news from RSS feeds",
	Long: `TechPulse fetches configured RSS/Atom feeds, filters articles against
your interests, scores their relevance and renders a ranked HTML report.

Pipeline: fetch → filter → score → report`,
}

var cfgPath string

func init() {
	rootCmd.Version = "1.0.0"
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
