package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"seosa/internal/api"
	"seosa/internal/config"
	"seosa/internal/persistence"
)

var (
	servePort int
	serveDB   string
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a simulation over HTTP, stepped by admin requests",
		RunE:  runServe,
	}
	cmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides SEOSA_PORT)")
	cmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path")
	cmd.Flags().Int64Var(&runSeed, "seed", 0, "Deterministic seed (0 = scenario default)")
	cmd.Flags().StringVar(&runScenario, "scenario", "", "Path to a scenario YAML file")
	cmd.Flags().IntVar(&runSpawn, "spawn", 0, "Generate a cast of this size instead of using a scenario")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel)

	sim, seed, scName, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	var db *persistence.DB
	var runID string
	dbPath := serveDB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath != "" {
		db, err = persistence.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		runID, err = db.CreateRun(seed, scName)
		if err != nil {
			return err
		}
	}

	port := servePort
	if port == 0 {
		port = cfg.Port
	}

	server := &api.Server{
		Sim:      sim,
		DB:       db,
		RunID:    runID,
		Port:     port,
		AdminKey: cfg.AdminKey,
	}
	server.Start()

	slog.Info("serving simulation", "scenario", scName, "seed", seed, "port", port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down")
	if db != nil {
		if err := db.SaveState(runID, sim); err != nil {
			slog.Error("final save failed", "error", err)
		}
	}
	return nil
}
