// Package main provides the command-line entry point for the benefits advisor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/benefits-advisor/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Financial profile generator, parser and benefits advisor",
	Long: `advisor generates reproducible sample financial profiles, parses uploaded
multi-section profile CSVs, and asks Gemini for money-saving recommendations.

Configuration can be loaded from a JSON file using --config. Command-line flags
override config file values, which override environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
}

// loadConfig resolves the effective configuration for a command
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
