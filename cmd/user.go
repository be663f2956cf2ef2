package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user <login>",
	Short: "Analyzes a GitHub user from their repository listing",
	Long: `Fetches a user's profile and owned repositories and derives star and
fork totals, a per-language repository histogram and the top
repositories by stars.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scraper, cfg, cleanup, err := newScraper(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		defer cleanup()

		analysis, err := scraper.AnalyzeUser(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to analyze %s: %v\n", args[0], err)
			os.Exit(1)
		}

		if err := emit(cmd, cfg, args[0], analysis); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
