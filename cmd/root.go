package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/config"
)

const clientTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:   "socialmon",
	Short: "Generate and publish social media content",
	Long: `Socialmon turns company context and industry articles into social
media posts, comments, and replies, and publishes them to Mastodon.

Pipeline: fetch context → generate → review JSON artifacts → publish`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

// loadConfig loads and validates configuration. Every command calls this
// before constructing any client, so a missing key fails before any
// network I/O.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
