package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long:  `Creates a commented example configuration at the --config path.`,
	RunE:  runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
}

const defaultConfigYAML = `# TechPulse configuration

# RSS/Atom feeds to aggregate. Priority multiplies the relevance score of
# every article from that feed (1.0 = normal).
feeds:
  - name: Hacker News
    url: https://news.ycombinator.com/rss
    category: Tech
    priority: 1.2
  - name: Ars Technica
    url: https://feeds.arstechnica.com/arstechnica/index
    category: Tech
    priority: 1.0

# Interests drive filtering and scoring. Keywords match whole words,
# case-insensitive. Weight scales this interest's score contribution.
interests:
  - name: AI
    keywords: [AI, LLM, "machine learning", "neural network"]
    weight: 1.5
  - name: Security
    keywords: [vulnerability, exploit, CVE, breach]
    weight: 1.0

logging:
  level: INFO
  directory: logs
  filename: aggregator.log
  console: true

output:
  directory: output
  filename_prefix: techpulse_report
  max_articles: 50
  min_score: 0.5

fetching:
  timeout: 10
  max_workers: 5
  user_agent: TechPulse RSS Aggregator/1.0
`

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	if err := os.WriteFile(cfgPath, []byte(defaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", cfgPath)
	fmt.Println("Edit the feeds and interests, then run 'techpulse run'.")
	return nil
}
