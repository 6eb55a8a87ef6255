package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/sheet-copywriter/internal/export"
	"github.com/jonathan/sheet-copywriter/internal/pipeline"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

var (
	exportIn  string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert saved results to CSV or XLSX",
	Long: `Reads results saved by 'generate --save-json' (or a previous CSV export) and
writes them as .csv or .xlsx, chosen by the --out extension.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportIn, "in", "i", "", "Results file (.json or .csv)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (.csv or .xlsx)")
	_ = exportCmd.MarkFlagRequired("in")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	results, err := readResultsFile(exportIn)
	if err != nil {
		return err
	}
	if err := pipeline.ExportFile(exportOut, results); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d result(s) to %s\n", len(results), exportOut)
	return nil
}

// readResultsFile accepts a JSON array of results, a JSON run result with a
// "results" field, or a CSV export.
func readResultsFile(path string) ([]types.GenerationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return export.ParseCSV(bytes.NewReader(data))
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []types.GenerationResult
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return results, nil
	}

	var run pipeline.RunResult
	if err := json.Unmarshal(trimmed, &run); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return run.Results, nil
}
