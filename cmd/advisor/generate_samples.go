package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefits-advisor/internal/generator"
	"github.com/jonathan/benefits-advisor/internal/observability"
)

var generateSamplesCmd = &cobra.Command{
	Use:   "generate-samples",
	Short: "Write the built-in sample profiles to a directory",
	Long: `Write one profile CSV per built-in sample person (Alice Johnson, Bob Smith,
Carol Lee) into the output directory, creating it if needed.`,
	RunE: runGenerateSamples,
}

var (
	samplesDir  string
	samplesTier string
)

func init() {
	generateSamplesCmd.Flags().StringVarP(&samplesDir, "dir", "d", "", "Output directory (defaults to config output_dir, sample_csvs)")
	generateSamplesCmd.Flags().StringVarP(&samplesTier, "tier", "t", "", "Row-count tier: demo or large (defaults to config tier)")

	rootCmd.AddCommand(generateSamplesCmd)
}

func runGenerateSamples(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.OutputDir
	if cmd.Flags().Changed("dir") {
		dir = samplesDir
	}
	tierName := cfg.Tier
	if cmd.Flags().Changed("tier") {
		tierName = samplesTier
	}
	tier, err := generator.ParseTier(tierName)
	if err != nil {
		return err
	}

	return generateSamples(cmd.Context(), cmd.OutOrStdout(), dir, tier)
}

func generateSamples(ctx context.Context, out io.Writer, dir string, tier generator.Tier) error {
	paths, err := generator.WriteSamples(ctx, dir, generator.DefaultPeople, tier)
	if err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	observability.NewPrinter(out).PrintGenerated(paths)
	return nil
}
