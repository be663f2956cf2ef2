package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Searches for repositories above 100 stars",
	Long: `Runs a repository search for projects above 100 stars, optionally
restricted to one language, sorted by star count descending.`,
	Run: func(cmd *cobra.Command, args []string) {
		language, _ := cmd.Flags().GetString("language")
		limit, _ := cmd.Flags().GetInt("limit")

		scraper, cfg, cleanup, err := newScraper(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		defer cleanup()

		repos, err := scraper.SearchTrending(context.Background(), language, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to search trending repos: %v\n", err)
			os.Exit(1)
		}

		key := "trending"
		if language != "" {
			key += "_" + language
		}
		if err := emit(cmd, cfg, key, repos); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
	trendingCmd.Flags().StringP("language", "l", "", "Restrict the search to one language")
	trendingCmd.Flags().IntP("limit", "n", 0, "Maximum number of results (default 100)")
}
