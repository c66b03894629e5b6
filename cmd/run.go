package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mmukex/techpulse/internal/archive"
	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/feed"
	"github.com/mmukex/techpulse/internal/filter"
	"github.com/mmukex/techpulse/internal/logging"
	"github.com/mmukex/techpulse/internal/report"
	"github.com/mmukex/techpulse/internal/scorer"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full aggregation pipeline",
	Long:  `Fetches all configured feeds, filters articles against your interests, scores relevance and writes a ranked HTML report.`,
	RunE:  runRun,
}

var (
	runVerbose    bool
	runOutput     string
	runDryRun     bool
	runSkipSeen   bool
	runCategories []string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Enable debug logging and diagnostic summaries")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Override the output directory from the configuration")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Run all steps without saving the report")
	runCmd.Flags().BoolVar(&runSkipSeen, "skip-seen", false, "Drop articles already present in the archive")
	runCmd.Flags().StringSliceVar(&runCategories, "category", nil, "Only include articles from these feed categories")
}

func runRun(cmd *cobra.Command, args []string) error {
	start := time.Now()

	fmt.Printf("[1/5] Loading configuration from %q...\n", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	fmt.Printf("      -> %d feeds, %d interests configured\n", len(cfg.Feeds), len(cfg.Interests))

	if runVerbose {
		cfg.Logging.Level = "DEBUG"
	}
	if runOutput != "" {
		cfg.Output.Directory = runOutput
	}

	log, err := logging.Setup(cfg.Logging)
	if err != nil {
		return err
	}
	log.Info("techpulse started", "config", cfgPath)

	fmt.Println("\n[2/5] Fetching RSS feeds...")
	fetcher := feed.NewFetcher(cfg.Fetch, log)
	articles := fetcher.FetchAll(context.Background(), cfg.Feeds)
	fmt.Printf("      -> %d articles fetched\n", len(articles))

	if len(articles) == 0 {
		fmt.Println("\nWarning: no articles fetched, check the feed URLs.")
	}

	if len(runCategories) > 0 {
		articles = filter.ByCategory(articles, runCategories)
		fmt.Printf("      -> %d articles in categories %s\n", len(articles), strings.Join(runCategories, ", "))
	}

	if runSkipSeen {
		kept, err := dropSeen(cfg, articles)
		if err != nil {
			return err
		}
		if skipped := len(articles) - len(kept); skipped > 0 {
			fmt.Printf("      -> %d already-seen articles skipped\n", skipped)
		}
		articles = kept
	}

	fmt.Println("\n[3/5] Filtering articles by keywords...")
	results := filter.Articles(articles, cfg.Interests)
	fmt.Printf("      -> %d relevant articles found\n", len(results))
	log.Info("filtering complete", "matched", len(results), "total", len(articles))

	if runVerbose && len(results) > 0 {
		printKeywordStats(filter.KeywordStats(results))
	}

	fmt.Println("\n[4/5] Calculating relevance scores...")
	scored := scorer.All(results, cfg.Interests)

	if cfg.Output.MinScore > 0 {
		scored = scorer.FilterByMinScore(scored, cfg.Output.MinScore)
		fmt.Printf("      -> %d articles with score >= %v\n", len(scored), cfg.Output.MinScore)
	}
	if cfg.Output.MaxArticles > 0 && len(scored) > cfg.Output.MaxArticles {
		scored = scorer.Top(scored, cfg.Output.MaxArticles)
		fmt.Printf("      -> capped to top %d articles\n", cfg.Output.MaxArticles)
	}

	if runVerbose && len(scored) > 0 {
		printDistribution(scorer.Distribution(scored))
	}

	fmt.Println("\n[5/5] Generating HTML report...")
	html, err := report.Render(scored, cfg)
	if err != nil {
		log.Error("report generation failed", "error", err)
		return err
	}

	reportPath := ""
	if runDryRun {
		fmt.Printf("      -> report generated (%d bytes)\n", len(html))
		fmt.Println("      -> dry run, report not saved")
	} else {
		reportPath, err = report.Save(html, cfg.Output.Directory, cfg.Output.FilenamePrefix)
		if err != nil {
			log.Error("report save failed", "error", err)
			return err
		}
		fmt.Printf("      -> report saved: %s\n", reportPath)

		if err := recordRun(cfg, scored, log); err != nil {
			log.Warn("failed to archive results", "error", err)
		}
	}

	printSummary(len(cfg.Feeds), len(articles), len(results), len(scored), time.Since(start))
	printTopArticles(scored)

	if reportPath != "" {
		fmt.Printf("\nOpen in a browser: file://%s\n", reportPath)
	}

	log.Info("techpulse finished", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func dropSeen(cfg *config.Config, articles []feed.Article) ([]feed.Article, error) {
	db, err := archive.Open(cfg.ArchivePath())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	kept := make([]feed.Article, 0, len(articles))
	for _, a := range articles {
		seen, err := db.Seen(a.Link)
		if err != nil {
			return nil, err
		}
		if !seen {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

func recordRun(cfg *config.Config, scored []scorer.ScoredArticle, log *slog.Logger) error {
	db, err := archive.Open(cfg.ArchivePath())
	if err != nil {
		return err
	}
	defer db.Close()

	newCount, err := db.Record(scored)
	if err != nil {
		return err
	}
	log.Info("results archived", "new", newCount, "total", len(scored))
	return nil
}

func printKeywordStats(stats []filter.KeywordCount) {
	fmt.Println("      -> top keywords:")
	for i, s := range stats {
		if i >= 5 {
			break
		}
		fmt.Printf("         - %s: %dx\n", s.Keyword, s.Count)
	}
}

func printDistribution(buckets []scorer.Bucket) {
	fmt.Println("      -> score distribution:")
	for _, b := range buckets {
		if b.Count > 0 {
			fmt.Printf("         - %s: %d articles\n", b.Label, b.Count)
		}
	}
}

func printSummary(feeds, fetched, filtered, reported int, duration time.Duration) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	fmt.Println()
	fmt.Println(headerStyle.Render("SUMMARY"))
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("  Feeds fetched:    %d\n", feeds)
	fmt.Printf("  Articles found:   %d\n", fetched)
	fmt.Printf("  After filtering:  %d\n", filtered)
	fmt.Printf("  In report:        %d\n", reported)
	fmt.Printf("  Duration:         %.2fs\n", duration.Seconds())
	fmt.Println(strings.Repeat("─", 40))
}

func printTopArticles(scored []scorer.ScoredArticle) {
	if len(scored) == 0 {
		return
	}

	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	interestStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println("\nTop articles:")
	for i, s := range scored {
		if i >= 3 {
			break
		}

		title := s.Article.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}

		fmt.Printf("  %d. %s %s\n     %s | %s\n",
			i+1,
			scoreStyle.Render(fmt.Sprintf("[%.1f]", s.Score)),
			title,
			interestStyle.Render(s.Interest),
			s.Article.FeedName,
		)
	}
}
