package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/sheet-copywriter/internal/observability"
	"github.com/jonathan/sheet-copywriter/internal/sheets"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <sheet-url>",
	Short: "Load a sheet and check its required columns",
	Long:  `Loads the worksheet addressed by the URL (gid selects the tab), prints a preview and reports any missing required columns.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the table as JSON instead of a preview")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	inspection, err := a.pipeline.Inspect(ctx, args[0])
	if err != nil {
		return err
	}

	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(inspection); err != nil {
			return fmt.Errorf("failed to encode table: %w", err)
		}
	} else {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintTable(inspection.Table.Headers, inspection.Table.Rows)
		printer.PrintMissingColumns(inspection.Missing)
	}

	if !inspection.Valid() {
		return &sheets.MissingColumnsError{Missing: inspection.Missing}
	}
	return nil
}
