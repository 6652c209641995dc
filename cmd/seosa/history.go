package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seosa/internal/config"
	"seosa/internal/persistence"
)

var (
	historyDB    string
	historyRun   string
	historyLimit int
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the chronicles of a saved run",
		RunE:  runHistory,
	}
	cmd.Flags().StringVar(&historyDB, "db", "", "SQLite database path")
	cmd.Flags().StringVar(&historyRun, "run", "", "Run id to read")
	cmd.Flags().IntVar(&historyLimit, "limit", 100, "Maximum chronicles to print")
	cmd.MarkFlagRequired("run")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath := historyDB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		return fmt.Errorf("no database path given (use --db or SEOSA_DB)")
	}

	db, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.RecentChronicles(historyRun, historyLimit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no chronicles recorded)")
		return nil
	}

	// Newest first from the query; print oldest first.
	for i := len(rows) - 1; i >= 0; i-- {
		c := rows[i]
		fmt.Printf("[turn %3d] %-8s %s\n", c.Turn, c.Type, c.Summary)
	}
	return nil
}
