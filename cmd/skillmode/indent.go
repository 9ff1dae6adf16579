package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/buffer"
)

var (
	indentLineFlag  int
	indentWriteFlag bool
)

var indentCmd = &cobra.Command{
	Use:   "indent <file>",
	Short: "Re-indent a SKILL source file",
	Long: `Re-indent SKILL source. Without flags the re-indented file is printed to
stdout; --write rewrites the file in place; --line prints the target column
for a single line without applying it.

Examples:
  skillmode indent lib.il            # print re-indented source
  skillmode indent lib.il --write    # rewrite in place
  skillmode indent lib.il --line 12  # target column for line 12`,
	Args: cobra.ExactArgs(1),
	RunE: runIndent,
}

func init() {
	indentCmd.Flags().IntVar(&indentLineFlag, "line", 0, "1-based line to compute (0 = whole file)")
	indentCmd.Flags().BoolVar(&indentWriteFlag, "write", false, "Rewrite the file in place")
	rootCmd.AddCommand(indentCmd)
}

func runIndent(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	engine := newEngine(cfg, logger)

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	doc := buffer.NewDocument(string(data))

	if indentLineFlag > 0 {
		n := indentLineFlag - 1
		if n >= doc.LineCount() {
			return fmt.Errorf("line %d past end of file (%d lines)", indentLineFlag, doc.LineCount())
		}
		fmt.Println(engine.IndentLine(doc, n))
		return nil
	}

	engine.Reindent(doc)

	if indentWriteFlag {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(doc.Text()), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("File re-indented", map[string]interface{}{
			"path":  path,
			"lines": doc.LineCount(),
		})
		return nil
	}

	fmt.Print(doc.Text())
	return nil
}
