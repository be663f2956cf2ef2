// Package config loads the optional TOML configuration file and the
// environment overrides on top of it.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings of a scraper run. Every field has a
// working default; the file and the environment only override.
type Config struct {
	// Token authenticates API requests. Empty means anonymous access
	// with the lower quota. The GITHUB_TOKEN environment variable wins
	// over the file.
	Token string `toml:"token"`

	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	BaseURL string `toml:"base_url"`

	// PacingRPS throttles outgoing requests proactively. Zero disables
	// pacing and leaves only the header-driven governor.
	PacingRPS float64 `toml:"pacing_rps"`

	// Concurrency caps how many repositories a batch scrape works on
	// at once.
	Concurrency int `toml:"concurrency"`

	// OutputDir is where records are persisted as JSON files.
	OutputDir string `toml:"output_dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		PacingRPS:   1.2,
		Concurrency: 2,
		OutputDir:   "data",
	}
}

// Load reads the TOML file at path on top of the defaults, then
// applies environment overrides. A missing file is not an error; an
// unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to the defaults.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.Token = token
	}
	return cfg, nil
}
