package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefits-advisor/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one synthetic financial profile",
	Long: `Generate a four-section financial profile for one person. The same name always
produces the same data. Writes to stdout unless --out is given.`,
	RunE: runGenerate,
}

var (
	generateName string
	generateAge  int
	generateTier string
	generateOut  string
)

func init() {
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "", "Person's full name (required)")
	generateCmd.Flags().IntVarP(&generateAge, "age", "a", 0, "Person's age (required)")
	generateCmd.Flags().StringVarP(&generateTier, "tier", "t", "", "Row-count tier: demo or large (defaults to config tier)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output file path (defaults to stdout)")

	_ = generateCmd.MarkFlagRequired("name")
	_ = generateCmd.MarkFlagRequired("age")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tierName := cfg.Tier
	if cmd.Flags().Changed("tier") {
		tierName = generateTier
	}
	tier, err := generator.ParseTier(tierName)
	if err != nil {
		return err
	}

	return generateProfile(cmd.OutOrStdout(), generateName, generateAge, tier, generateOut)
}

// generateProfile renders one profile to out, or to the file at path when set
func generateProfile(out io.Writer, name string, age int, tier generator.Tier, path string) error {
	content, err := generator.Render(name, age, tier)
	if err != nil {
		return fmt.Errorf("failed to generate profile: %w", err)
	}

	if path == "" || path == "-" {
		_, err = io.WriteString(out, content)
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &generator.WriteError{Path: path, Cause: err}
	}
	fmt.Fprintf(os.Stderr, "Generated CSV for %s -> %s\n", name, path)
	return nil
}
