package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/buffer"
	"github.com/Aurelbuche/skill-mode/internal/sexp"
)

var (
	contextOffset int
	contextFormat string
)

var contextCmd = &cobra.Command{
	Use:   "context <file>",
	Short: "Resolve the structural context at an offset",
	Long: `Resolve the enclosing form and its parent around a byte offset in a SKILL
source file: head symbol, opening column, line indentation and argument index,
plus the indent column the engine would pick there.`,
	Args: cobra.ExactArgs(1),
	Run:  runContext,
}

func init() {
	contextCmd.Flags().IntVar(&contextOffset, "offset", 0, "Byte offset of the cursor")
	contextCmd.Flags().StringVar(&contextFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(contextCmd)
}

// ContextCLI mirrors sexp.Context for CLI output.
type ContextCLI struct {
	Head     string `json:"head,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Indent   int    `json:"indent"`
	ArgIndex int    `json:"argIndex"`
}

// ContextResponseCLI is the context query result.
type ContextResponseCLI struct {
	Offset         int         `json:"offset"`
	Line           int         `json:"line"`
	ColumnAtOffset int         `json:"column"`
	Current        *ContextCLI `json:"current,omitempty"`
	Parent         *ContextCLI `json:"parent,omitempty"`
	TargetColumn   int         `json:"targetColumn"`
}

func runContext(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	doc := buffer.NewDocument(string(data))
	p := contextOffset
	if p < 0 {
		p = 0
	}
	if p > doc.Len() {
		p = doc.Len()
	}

	cur := sexp.ResolveCurrent(doc, p)
	par := sexp.ResolveParent(doc, p)
	engine := newEngine(cfg, logger)
	target := engine.IndentLine(doc, doc.LineAt(p))

	resp := &ContextResponseCLI{
		Offset:         p,
		Line:           doc.LineAt(p),
		ColumnAtOffset: doc.ColumnAt(p),
		Current:        toContextCLI(cur),
		Parent:         toContextCLI(par),
		TargetColumn:   target,
	}

	output, err := FormatResponse(resp, OutputFormat(contextFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func toContextCLI(ctx *sexp.Context) *ContextCLI {
	if ctx == nil {
		return nil
	}
	return &ContextCLI{
		Head:     ctx.Head,
		Line:     ctx.Line,
		Column:   ctx.Column,
		Indent:   ctx.Indent,
		ArgIndex: ctx.ArgIndex,
	}
}
