package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/config"
	skerrors "github.com/Aurelbuche/skill-mode/internal/errors"
	"github.com/Aurelbuche/skill-mode/internal/paths"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize skillmode configuration",
	Long:  "Creates a .skillmode/ directory with default configuration in the workspace root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .skillmode directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	modeDir := paths.ModeDir(rootFlag)
	if _, statErr := os.Stat(modeDir); statErr == nil {
		if !initForce {
			// Idempotent: already initialized is success.
			fmt.Println("skillmode already initialized.")
			fmt.Printf("Configuration at: %s\n", paths.ConfigPath(rootFlag))
			fmt.Println("\nRun 'skillmode init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(modeDir); removeErr != nil {
			return skerrors.New(skerrors.InternalError, "Failed to remove existing .skillmode directory", removeErr)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(rootFlag); err != nil {
		return skerrors.New(skerrors.InternalError, "Failed to write config file", err)
	}

	fmt.Println("skillmode initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", paths.ConfigPath(rootFlag))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Add your SKILL trees to sourceRoots and docRoots in the config")
	fmt.Println("  2. Run 'skillmode catalog --save' to build the symbol catalog")

	return nil
}
