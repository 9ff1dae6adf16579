package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var classifyFormat string

var classifyCmd = &cobra.Command{
	Use:   "classify <name>",
	Short: "Classify a symbol name",
	Long: `Report which catalog category a symbol name belongs to. Unknown names
come back as "uncategorized" rather than an error.`,
	Args: cobra.ExactArgs(1),
	Run:  runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(classifyCmd)
}

// ClassifyResponseCLI is the classification result.
type ClassifyResponseCLI struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func runClassify(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	c := loadOrBuildCatalog(cfg, logger)

	resp := &ClassifyResponseCLI{
		Name:     args[0],
		Category: string(c.Classify(args[0])),
	}
	output, err := FormatResponse(resp, OutputFormat(classifyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
