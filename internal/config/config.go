// Package config loads and validates the skill-mode workspace configuration
// stored at .skillmode/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Aurelbuche/skill-mode/internal/errors"
	"github.com/Aurelbuche/skill-mode/internal/paths"
)

// Config represents the complete skill-mode configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// SourceRoots are the SKILL source trees scanned by the catalog builder.
	SourceRoots []string `json:"sourceRoots" mapstructure:"sourceRoots"`
	// DocRoots are the documentation trees holding finder files.
	DocRoots []string `json:"docRoots" mapstructure:"docRoots"`
	// Recursive walks scan roots recursively.
	Recursive bool `json:"recursive" mapstructure:"recursive"`
	// Prefixes filters finder-file symbols per category by accepted name
	// prefixes; empty lists accept everything.
	Prefixes map[string][]string `json:"prefixes" mapstructure:"prefixes"`

	Indent  IndentConfig  `json:"indent" mapstructure:"indent"`
	Eval    EvalConfig    `json:"eval" mapstructure:"eval"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// IndentConfig contains indentation engine configuration
type IndentConfig struct {
	// RulesPath points at a TOML rule table overriding the built-in one.
	RulesPath string `json:"rulesPath" mapstructure:"rulesPath"`
	Width     int    `json:"width" mapstructure:"width"`
}

// EvalConfig contains evaluator bridge configuration
type EvalConfig struct {
	// ChannelPath is the pipe or file the vendor session reads commands from.
	ChannelPath string `json:"channelPath" mapstructure:"channelPath"`
	// LogPath is the session log the vendor application echoes results to.
	LogPath string `json:"logPath" mapstructure:"logPath"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		SourceRoots: []string{"."},
		DocRoots:    []string{},
		Recursive:   true,
		Prefixes:    map[string][]string{},
		Indent: IndentConfig{
			RulesPath: "",
			Width:     2,
		},
		Eval: EvalConfig{
			ChannelPath: "",
			LogPath:     "CDS.log",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .skillmode/config.json under root.
// A missing file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("recursive", true)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(paths.ModeDir(root))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to .skillmode/config.json under root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := paths.EnsureModeDir(root); err != nil {
		return err
	}
	return os.WriteFile(paths.ConfigPath(root), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.check(); err != nil {
		return errors.New(errors.ConfigInvalid, "invalid configuration", err)
	}
	return nil
}

func (c *Config) check() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Indent.Width < 0 {
		return &ConfigError{Field: "indent.width", Message: "must not be negative"}
	}
	for cat := range c.Prefixes {
		switch cat {
		case "functions", "forms", "classes", "methods":
		default:
			return &ConfigError{Field: "prefixes." + cat, Message: "unknown category"}
		}
	}
	for _, root := range append(append([]string{}, c.SourceRoots...), c.DocRoots...) {
		if filepath.Clean(root) == "" {
			return &ConfigError{Field: "roots", Message: "empty scan root"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
