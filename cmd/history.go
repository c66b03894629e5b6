package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mmukex/techpulse/internal/archive"
	"github.com/mmukex/techpulse/internal/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently archived articles",
	Long:  `Shows articles recorded by earlier runs, newest first.`,
	RunE:  runHistory,
}

var historyTop int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyTop, "top", "n", 20, "Number of articles to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	db, err := archive.Open(cfg.ArchivePath())
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.Recent(historyTop)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No archived articles yet. Run 'techpulse run' first.")
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	interestStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-5s  %-10s  %-15s  %s", "SCORE", "SEEN", "INTEREST", "TITLE")))
	fmt.Println(strings.Repeat("─", 100))

	for _, e := range entries {
		interest := e.Interest
		if len(interest) > 15 {
			interest = interest[:12] + "..."
		}

		title := e.Title
		if len(title) > 55 {
			title = title[:52] + "..."
		}

		fmt.Printf(" %s  %s  %s  %s\n",
			scoreStyle.Render(fmt.Sprintf("%-5.1f", e.Score)),
			dateStyle.Render(e.FirstSeen.Format("2006-01-02")),
			interestStyle.Render(fmt.Sprintf("%-15s", interest)),
			title,
		)
	}

	return nil
}
