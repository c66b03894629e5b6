package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmukex/techpulse/internal/config"
	"github.com/mmukex/techpulse/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the path of the most recent report",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	latest, err := report.Latest(cfg.Output.Directory)
	if err != nil {
		return err
	}
	if latest == "" {
		fmt.Println("No reports yet. Run 'techpulse run' first.")
		return nil
	}

	fmt.Println(latest)
	return nil
}
