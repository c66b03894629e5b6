package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmukex/techpulse/internal/feed"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <site-url>",
	Short: "Find the RSS/Atom feed of a website",
	Long:  `Scans the site for a feed link element and probes common feed paths, printing the feed URL to add to the configuration.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	feedURL, err := feed.Discover(args[0])
	if err != nil {
		return err
	}

	fmt.Println(feedURL)
	return nil
}
