package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/sheet-copywriter/internal/observability"
	"github.com/jonathan/sheet-copywriter/internal/pipeline"
)

var (
	generateUpdateSheet bool
	generateOut         string
	generateJSON        string
)

var generateCmd = &cobra.Command{
	Use:   "generate <sheet-url>",
	Short: "Generate marketing copy for every product row",
	Long: `Generates title, description, hashtags, post and cta for every row of the sheet.
Rows whose generation fails get empty copy; the batch itself only fails when the
sheet cannot be read, required columns are missing, or an output cannot be written.

Use --update-sheet to write columns E..I back to the sheet and --out to export a
.csv or .xlsx file.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateUpdateSheet, "update-sheet", false, "Write generated columns back to the sheet (E..I)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Export results to a .csv or .xlsx file")
	generateCmd.Flags().StringVar(&generateJSON, "save-json", "", "Also save the raw results as JSON (usable with 'export --in')")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	provider, err := a.settings.ProviderConfig()
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	run, err := a.pipeline.Run(ctx, pipeline.RunOptions{
		SheetURL:    args[0],
		Provider:    provider,
		UpdateSheet: generateUpdateSheet,
		OutputPath:  generateOut,
		OnProgress: func(e pipeline.ProgressEvent) {
			printer.PrintStep(e.Step, e.Category, e.Message)
		},
	})
	if run == nil {
		return err
	}

	// A failed sheet write or export still carries the generated results.
	printer.PrintResults(run.Results)

	if generateJSON != "" {
		if werr := writeJSON(generateJSON, run.Results); werr != nil {
			return errors.Join(err, werr)
		}
	}
	return err
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
