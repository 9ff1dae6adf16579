package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/bridge"
)

var (
	logFollow bool
	logLines  int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the vendor session log",
	Long: `View the log file the vendor session echoes evaluation results to.

Examples:
  skillmode log              # Show last 50 lines
  skillmode log -n 100       # Show last 100 lines
  skillmode log -f           # Follow log output (tail -f)`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().BoolVarP(&logFollow, "follow", "f", false, "Follow log output")
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 50, "Number of lines to show")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logPath := cfg.Eval.LogPath

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Println("No session log found.")
		fmt.Println()
		fmt.Printf("Log file location: %s\n", logPath)
		fmt.Println()
		fmt.Println("The log appears once the vendor session is running; adjust")
		fmt.Println("eval.logPath in .skillmode/config.json if it lives elsewhere.")
		return nil
	}

	if err := showLogLines(logPath, logLines); err != nil {
		return err
	}
	if !logFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Following %s (Ctrl+C to stop)\n\n", logPath)
	tailer := bridge.NewTailer(logPath, newLogger(cfg), 0)
	err := tailer.Tail(ctx, func(line string) {
		fmt.Println(line)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

func showLogLines(path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	// Read all lines and keep last N.
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}

	for _, line := range lines {
		fmt.Println(line)
	}

	return scanner.Err()
}
