package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aurelbuche/skill-mode/internal/bridge"
	skerrors "github.com/Aurelbuche/skill-mode/internal/errors"
	"github.com/Aurelbuche/skill-mode/internal/logging"
)

var (
	evalNotify  string
	evalEcho    bool
	evalChannel string
	evalTail    bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Send an expression to the running vendor session",
	Long: `Append a SKILL statement to the session command channel. The channel is
fire-and-forget; results show up in the session log (see 'skillmode log').

Examples:
  skillmode eval 'hiZoomIn(hiGetCurrentWindow())'
  skillmode eval --echo 'loadContext("lib.cxt")'   # tag + print before evaluating
  skillmode eval --notify 'checkpoint reached'     # print only, evaluate nothing
  cat batch.il | skillmode eval                    # read statements from stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalNotify, "notify", "", "Send an informational print statement instead of evaluating")
	evalCmd.Flags().BoolVar(&evalEcho, "echo", false, "Print a tagged banner in the session before evaluating")
	evalCmd.Flags().StringVar(&evalChannel, "channel", "", "Override the configured channel path")
	evalCmd.Flags().BoolVar(&evalTail, "tail", false, "Follow the session log after sending")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	channel := cfg.Eval.ChannelPath
	if evalChannel != "" {
		channel = evalChannel
	}
	if channel == "" {
		return skerrors.New(skerrors.ChannelUnavailable,
			"no channel configured; set eval.channelPath or pass --channel", nil)
	}

	session, closer, err := bridge.Open(channel, logger)
	if err != nil {
		return skerrors.New(skerrors.ChannelUnavailable, "cannot open channel", err)
	}
	defer func() { _ = closer.Close() }()

	switch {
	case evalNotify != "":
		if err := session.Notify(evalNotify); err != nil {
			return err
		}
	case len(args) == 1 && evalEcho:
		id, err := session.EvalWithEcho(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("sent [%s]\n", id)
	case len(args) == 1:
		if err := session.Eval(args[0]); err != nil {
			return err
		}
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		expr := strings.TrimSpace(string(data))
		if expr == "" {
			return fmt.Errorf("nothing to send: no expression argument and empty stdin")
		}
		if err := session.Eval(expr); err != nil {
			return err
		}
	}

	if !evalTail {
		return nil
	}
	return followSessionLog(cfg.Eval.LogPath, logger)
}

func followSessionLog(path string, logger *logging.Logger) error {
	if !fileExists(path) {
		return skerrors.New(skerrors.LogMissing, "session log not found: "+path, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tailer := bridge.NewTailer(path, logger, 0)
	err := tailer.Tail(ctx, func(line string) {
		fmt.Println(line)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
