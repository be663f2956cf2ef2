package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oss-intel/github-intel/internal/usecase"
)

var repoCmd = &cobra.Command{
	Use:   "repo <owner>/<name>",
	Short: "Scrapes one repository into a composite JSON record",
	Long: `Fetches a repository's metadata, contributors, open issues and language
breakdown and assembles them into one composite record. Any sub-fetch
failure aborts the whole scrape; no partial record is produced.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		owner, name, err := usecase.SplitFullName(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

		scraper, cfg, cleanup, err := newScraper(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		defer cleanup()

		record, err := scraper.ScrapeRepo(context.Background(), owner, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to scrape %s: %v\n", args[0], err)
			os.Exit(1)
		}

		if err := emit(cmd, cfg, args[0], record); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
}
