package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ContextResponseCLI:
		return formatContextHuman(v), nil
	case *CatalogResponseCLI:
		return formatCatalogHuman(v), nil
	case *SymbolsResponseCLI:
		return formatSymbolsHuman(v), nil
	case *ClassifyResponseCLI:
		return fmt.Sprintf("%s: %s", v.Name, v.Category), nil
	default:
		// For unknown types, fall back to JSON.
		return formatJSON(resp)
	}
}

func formatContextHuman(resp *ContextResponseCLI) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Context at offset %d (line %d, column %d)\n",
		resp.Offset, resp.Line+1, resp.ColumnAtOffset))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	writeOne := func(label string, ctx *ContextCLI) {
		if ctx == nil {
			b.WriteString(fmt.Sprintf("%s: top level\n", label))
			return
		}
		head := ctx.Head
		if head == "" {
			head = "(none)"
		}
		b.WriteString(fmt.Sprintf("%s:\n", label))
		b.WriteString(fmt.Sprintf("  Head: %s\n", head))
		b.WriteString(fmt.Sprintf("  Opens at: line %d, column %d\n", ctx.Line+1, ctx.Column))
		b.WriteString(fmt.Sprintf("  Line indent: %d\n", ctx.Indent))
		b.WriteString(fmt.Sprintf("  Argument index: %d\n", ctx.ArgIndex))
	}
	writeOne("Current", resp.Current)
	b.WriteString("\n")
	writeOne("Parent", resp.Parent)
	b.WriteString(fmt.Sprintf("\nTarget indent column: %d\n", resp.TargetColumn))
	return b.String()
}

func formatCatalogHuman(resp *CatalogResponseCLI) string {
	var b strings.Builder
	b.WriteString("Catalog build\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Files scanned: %d\n", resp.FilesScanned))
	b.WriteString(fmt.Sprintf("  Functions: %d\n", resp.Functions))
	b.WriteString(fmt.Sprintf("  Forms:     %d\n", resp.Forms))
	b.WriteString(fmt.Sprintf("  Classes:   %d\n", resp.Classes))
	b.WriteString(fmt.Sprintf("  Methods:   %d\n", resp.Methods))
	if resp.SavedTo != "" {
		b.WriteString(fmt.Sprintf("\nSaved to %s\n", resp.SavedTo))
	}
	return b.String()
}

func formatSymbolsHuman(resp *SymbolsResponseCLI) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%d)\n", resp.Category, len(resp.Names)))
	for _, n := range resp.Names {
		b.WriteString("  " + n + "\n")
	}
	return b.String()
}
