// Package main provides the entry point for the sheet copywriter CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "copywriter",
	Short: "Generate marketing copy for every product row of a Google Sheet",
	Long: `copywriter reads product rows (Product_Name, Category, Price, Keywords) from a
Google Sheet, asks a language model for a title, description, hashtags, post and
call to action per product, and writes the results back to the sheet or to a
CSV/XLSX file.

Settings come from flags, then --config (JSON or YAML), then the environment
(.env is loaded if present).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
