package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefits-advisor/internal/document"
	"github.com/jonathan/benefits-advisor/internal/observability"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a profile CSV and print its sections",
	Long: `Parse a multi-section profile CSV and print a preview of every recognized
section. Sections that fail to parse are reported; the others are still shown.`,
	RunE: runParse,
}

var (
	parseInputFile string
	parsePreview   int
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to the profile CSV (required)")
	parseCmd.Flags().IntVarP(&parsePreview, "preview", "p", 0, "Rows to show per section (defaults to config preview_rows)")

	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	preview := cfg.PreviewRows
	if cmd.Flags().Changed("preview") {
		preview = parsePreview
	}

	return parseFile(cmd.OutOrStdout(), parseInputFile, preview)
}

// parseFile prints every section of the profile at path
func parseFile(out io.Writer, path string, preview int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	doc, parseErr := document.Parse(data)
	if doc == nil {
		return fmt.Errorf("failed to parse %s: %w", path, parseErr)
	}

	printer := observability.NewPrinter(out)
	printer.PrintDocument(doc, preview)

	var sectionErrs []error
	for _, mse := range document.MalformedSections(parseErr) {
		sectionErrs = append(sectionErrs, mse)
	}
	printer.PrintSectionErrors(sectionErrs)

	if len(doc.Sections) == 0 && len(sectionErrs) == 0 {
		fmt.Fprintln(out, "No recognized sections found.")
	}
	return nil
}
