// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/oss-intel/github-intel/internal/config"
	"github.com/oss-intel/github-intel/internal/gateway"
	"github.com/oss-intel/github-intel/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-intel",
	Short: "A CLI tool to collect structured data about GitHub repositories and users.",
	Long: `github-intel scrapes repository metadata, contributors, issues and
language breakdowns from the GitHub REST API, throttling itself against
the API's rate limit, and emits the assembled records as JSON.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringP("out", "O", "", "Directory to persist the result as JSON (default: print to stdout)")
	rootCmd.PersistentFlags().Bool("save", false, "Persist the result under the configured output directory")
}

// newScraper wires the configuration, gateway and scraper for one
// command invocation. The returned cleanup closes the gateway and must
// run on every exit path.
func newScraper(cmd *cobra.Command) (*usecase.Scraper, config.Config, func(), error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	gw, err := gateway.NewGateway(cfg.Token, logger,
		gateway.WithBaseURL(cfg.BaseURL),
		gateway.WithPacingRPS(cfg.PacingRPS),
	)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	return usecase.NewScraper(gw, logger), cfg, gw.Close, nil
}

// emit prints the record as indented JSON on stdout, or persists it
// under the --out directory (or the configured one with --save).
func emit(cmd *cobra.Command, cfg config.Config, key string, record any) error {
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		if save, _ := cmd.Flags().GetBool("save"); save {
			outDir = cfg.OutputDir
		}
	}
	if outDir != "" {
		path, err := usecase.SaveRecord(outDir, key, record)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		return nil
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
