// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sheet-copywriter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
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

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// PrintTable outputs the header row and the first few data rows.
func (p *Printer) PrintTable(headers []string, rows [][]string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Columns:  %s\n", strings.Join(headers, ", ")))
	sb.WriteString(fmt.Sprintf("Rows:     %d\n", len(rows)))

	if len(rows) > 0 {
		sb.WriteString("\n")
		count := min(len(rows), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, strings.Join(rows[i], " | ")))
		}
		if len(rows) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(rows)-maxItemsToShow))
		}
	}

	p.printBox("SHEET PREVIEW", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMissingColumns reports required columns absent from the sheet.
// Nothing is printed when none are missing.
func (p *Printer) PrintMissingColumns(missing []string) {
	if len(missing) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("The sheet is missing required columns:\n")
	for _, col := range missing {
		sb.WriteString(fmt.Sprintf("  • %s\n", col))
	}
	sb.WriteString(fmt.Sprintf("\nRequired: %s", strings.Join(types.RequiredColumns(), ", ")))

	p.printBox("INVALID SHEET FORMAT", sb.String())
}

// PrintResults outputs a summary of generated copy with the first few titles.
func (p *Printer) PrintResults(results []types.GenerationResult) {
	if len(results) == 0 {
		return
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated: %d   Defaulted: %d\n\n", len(results)-failed, failed))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		if r.Failed() {
			sb.WriteString(fmt.Sprintf("✗ %s\n", r.Name))
			sb.WriteString(fmt.Sprintf("    %s\n", r.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s\n", r.Name))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Title))
		if tags := r.JoinedHashtags(); tags != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", tags))
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(results)-maxItemsToShow))
	}

	p.printBox("GENERATED COPY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStep outputs a one-line progress message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, category, message string) {
	marker := "•"
	switch category {
	case "completed":
		marker = "✓"
	case "failed":
		marker = "✗"
	case "warning":
		marker = "!"
	}
	fmt.Fprintf(p.out, "%s [%s] %s\n", marker, step, message)
}
