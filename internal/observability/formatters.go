// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/benefits-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// cellWidth caps each cell in a preview table
	cellWidth = 18
)

// Printer handles formatted output for the parse and recommend commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs one box per parsed section with the first previewRows rows.
func (p *Printer) PrintDocument(doc *types.Document, previewRows int) {
	if doc == nil {
		return
	}
	if previewRows <= 0 {
		previewRows = maxItemsToShow
	}

	for _, name := range doc.Names() {
		sec, _ := doc.Section(name)
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Rows: %d  Columns: %d\n\n", len(sec.Rows), len(sec.Columns)))
		sb.WriteString(formatRow(sec.Columns))

		head := sec.Head(previewRows)
		for _, row := range head.Rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = v.String()
			}
			sb.WriteString("\n")
			sb.WriteString(formatRow(cells))
		}
		if len(sec.Rows) > previewRows {
			sb.WriteString(fmt.Sprintf("\n... and %d more rows", len(sec.Rows)-previewRows))
		}

		p.printBox(strings.ToUpper(name.Title()), sb.String())
	}
}

// PrintSectionErrors outputs the sections that could not be parsed.
func (p *Printer) PrintSectionErrors(errs []error) {
	if len(errs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d section(s) skipped:\n", len(errs)))
	for _, err := range errs {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", err))
	}

	p.printBox("PARSE ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs one card per recommendation.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDATIONS", "No recommendations found in the reply.")
		return
	}

	var sb strings.Builder
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, rec.Title))
		for _, line := range wrap(rec.Description, boxWidth-8) {
			sb.WriteString(fmt.Sprintf("    %s\n", line))
		}
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("RECOMMENDATIONS (%d)", len(recs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGenerated outputs the files written by generate-samples.
func (p *Printer) PrintGenerated(paths []string) {
	if len(paths) == 0 {
		return
	}

	var sb strings.Builder
	for _, path := range paths {
		sb.WriteString(fmt.Sprintf("✓ %s\n", path))
	}

	p.printBox("GENERATED PROFILES", strings.TrimSuffix(sb.String(), "\n"))
}

func formatRow(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", cellWidth, truncate(cell, cellWidth))
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
