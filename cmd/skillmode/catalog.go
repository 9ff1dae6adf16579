package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/catalog"
	"github.com/Aurelbuche/skill-mode/internal/config"
	skerrors "github.com/Aurelbuche/skill-mode/internal/errors"
	"github.com/Aurelbuche/skill-mode/internal/logging"
	"github.com/Aurelbuche/skill-mode/internal/paths"
)

var (
	catalogSave   bool
	catalogFormat string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build the symbol catalog",
	Long: `Scan the configured documentation trees (finder files) and SKILL source
trees and build the categorized symbol catalog. With --save the result is
persisted to .skillmode/catalog.db for later classify/symbols queries.`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogSave, "save", false, "Persist the catalog to .skillmode/catalog.db")
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(catalogCmd)
}

// CatalogResponseCLI summarizes a catalog build.
type CatalogResponseCLI struct {
	FilesScanned int    `json:"filesScanned"`
	Functions    int    `json:"functions"`
	Forms        int    `json:"forms"`
	Classes      int    `json:"classes"`
	Methods      int    `json:"methods"`
	SavedTo      string `json:"savedTo,omitempty"`
}

func runCatalog(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	cat := catalog.New()
	visited := buildCatalog(cat, cfg, logger)

	resp := &CatalogResponseCLI{
		FilesScanned: visited,
		Functions:    cat.Len(catalog.Functions),
		Forms:        cat.Len(catalog.Forms),
		Classes:      cat.Len(catalog.Classes),
		Methods:      cat.Len(catalog.Methods),
	}

	if catalogSave {
		dbPath := paths.CatalogDBPath(rootFlag)
		store, err := catalog.OpenStore(dbPath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", skerrors.New(skerrors.CatalogDBError, "cannot open catalog database", err))
			os.Exit(1)
		}
		defer func() { _ = store.Close() }()
		if err := store.Save(cat); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", skerrors.New(skerrors.CatalogDBError, "cannot save catalog", err))
			os.Exit(1)
		}
		resp.SavedTo = dbPath
	}

	output, err := FormatResponse(resp, OutputFormat(catalogFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// buildCatalog runs a full scan using the workspace configuration.
func buildCatalog(cat *catalog.Catalog, cfg *config.Config, logger *logging.Logger) int {
	builder := catalog.NewBuilder(logger)
	prefixes := make(map[catalog.Category][]string, len(cfg.Prefixes))
	for name, list := range cfg.Prefixes {
		prefixes[catalog.Category(name)] = list
	}
	return builder.Build(cat, catalog.BuildOptions{
		DocRoots:    cfg.DocRoots,
		SourceRoots: cfg.SourceRoots,
		Recursive:   cfg.Recursive,
		Prefixes:    prefixes,
	})
}

// loadOrBuildCatalog prefers the saved catalog when one exists, and falls
// back to a fresh in-memory build.
func loadOrBuildCatalog(cfg *config.Config, logger *logging.Logger) *catalog.Catalog {
	dbPath := paths.CatalogDBPath(rootFlag)
	if fileExists(dbPath) {
		store, err := catalog.OpenStore(dbPath, logger)
		if err == nil {
			defer func() { _ = store.Close() }()
			if cat, err := store.Load(); err == nil {
				return cat
			}
		}
		logger.Warn("Saved catalog unreadable, rebuilding", map[string]interface{}{
			"path": dbPath,
		})
	}
	cat := catalog.New()
	buildCatalog(cat, cfg, logger)
	return cat
}
