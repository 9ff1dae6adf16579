package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/config"
	"github.com/Aurelbuche/skill-mode/internal/indent"
	"github.com/Aurelbuche/skill-mode/internal/logging"
	"github.com/Aurelbuche/skill-mode/internal/paths"
	"github.com/Aurelbuche/skill-mode/internal/version"
)

var (
	// rootFlag is the workspace root holding .skillmode/
	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "skillmode",
	Short: "skillmode - editing intelligence for SKILL source",
	Long: `skillmode provides editor-independent editing intelligence for the SKILL
hardware-description scripting language: structural context queries, table-driven
auto-indentation, a symbol catalog built from documentation finder files and source
trees, and a bridge that pipes expressions into a running vendor session.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("skillmode version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Workspace root containing .skillmode/")
}

// mustLoadConfig loads the workspace config or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds a logger from the workspace config, honoring the
// SKILLMODE_LOG_LEVEL environment variable.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if env := os.Getenv("SKILLMODE_LOG_LEVEL"); env != "" {
		level = env
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(level),
	})
}

// newEngine builds the indent engine: rule table from the configured path,
// then the workspace override, then the embedded defaults.
func newEngine(cfg *config.Config, logger *logging.Logger) *indent.Engine {
	rulesPath := cfg.Indent.RulesPath
	if rulesPath == "" {
		if p := paths.RulesPath(rootFlag); fileExists(p) {
			rulesPath = p
		}
	}

	rules := indent.DefaultRuleset()
	if rulesPath != "" {
		loaded, err := indent.LoadRuleset(rulesPath)
		if err != nil {
			logger.Warn("Falling back to built-in indent rules", map[string]interface{}{
				"path": rulesPath, "error": err.Error(),
			})
		} else {
			rules = loaded
		}
	}
	if cfg.Indent.Width > 0 {
		rules.Width = cfg.Indent.Width
	}
	return indent.NewEngine(rules)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
