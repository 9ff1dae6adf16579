package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/catalog"
)

var symbolsFormat string

var symbolsCmd = &cobra.Command{
	Use:   "symbols <category>",
	Short: "List one catalog category",
	Long: `List the names in one catalog category: functions, forms, classes or
methods. Reads the saved catalog when present, otherwise scans fresh.`,
	Args: cobra.ExactArgs(1),
	Run:  runSymbols,
}

func init() {
	symbolsCmd.Flags().StringVar(&symbolsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(symbolsCmd)
}

// SymbolsResponseCLI lists one category.
type SymbolsResponseCLI struct {
	Category string   `json:"category"`
	Names    []string `json:"names"`
}

func runSymbols(cmd *cobra.Command, args []string) {
	cat := catalog.Category(args[0])
	if !cat.Valid() {
		fmt.Fprintf(os.Stderr, "Unknown category %q (want functions, forms, classes or methods)\n", args[0])
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	c := loadOrBuildCatalog(cfg, logger)

	resp := &SymbolsResponseCLI{
		Category: string(cat),
		Names:    c.Get(cat),
	}
	output, err := FormatResponse(resp, OutputFormat(symbolsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
