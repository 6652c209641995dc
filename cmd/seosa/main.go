// Command seosa runs the narrative society simulation.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "seosa",
		Short: "Deterministic narrative society simulation",
	}
	root.AddCommand(runCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(historyCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: l,
	}))
	slog.SetDefault(logger)
}
