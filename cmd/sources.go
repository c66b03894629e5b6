package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mmukex/techpulse/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured feeds",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	priorityStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-20s  %-12s  %-8s  %s", "NAME", "CATEGORY", "PRIORITY", "URL")))
	fmt.Println(strings.Repeat("─", 90))

	for _, f := range cfg.Feeds {
		name := f.Name
		if len(name) > 20 {
			name = name[:17] + "..."
		}

		fmt.Printf(" %-20s  %s  %s  %s\n",
			name,
			categoryStyle.Render(fmt.Sprintf("%-12s", f.Category)),
			priorityStyle.Render(fmt.Sprintf("%-8.1f", f.Priority)),
			f.URL,
		)
	}

	fmt.Printf("\n%d feeds configured\n", len(cfg.Feeds))
	return nil
}
