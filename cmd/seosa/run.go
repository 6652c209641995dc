package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"seosa/internal/agents"
	"seosa/internal/config"
	"seosa/internal/engine"
	"seosa/internal/meaning"
	"seosa/internal/persistence"
	"seosa/internal/scenario"
)

var (
	runTurns    int
	runSeed     int64
	runScenario string
	runSpawn    int
	runDB       string
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation for a fixed number of turns",
		RunE:  runRun,
	}
	cmd.Flags().IntVar(&runTurns, "turns", 50, "Number of turns to simulate")
	cmd.Flags().Int64Var(&runSeed, "seed", 0, "Deterministic seed (0 = scenario default)")
	cmd.Flags().StringVar(&runScenario, "scenario", "", "Path to a scenario YAML file")
	cmd.Flags().IntVar(&runSpawn, "spawn", 0, "Generate a cast of this size instead of using a scenario")
	cmd.Flags().StringVar(&runDB, "db", "", "SQLite database path for persisting the run")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
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
	dbPath := runDB
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
		slog.Info("run registered", "run", runID, "db", dbPath)
	}

	slog.Info("simulation starting",
		"scenario", scName, "seed", seed,
		"characters", len(sim.Characters), "turns", runTurns)

	sim.Observer = func(result engine.TurnResult) {
		engine.LogTurnSummary(sim.Stats, result)
	}
	sim.Run(runTurns)

	if db != nil {
		if err := db.SaveState(runID, sim); err != nil {
			return err
		}
	}

	fmt.Printf("\n=== Chronicle of %s ===\n", scName)
	if len(sim.World.Chronicles) == 0 {
		fmt.Println("(no chronicles emerged)")
	}
	for _, c := range sim.World.Chronicles {
		fmt.Printf("[turn %3d] %s\n", c.Turn, c.Summary)
	}
	return nil
}

// buildSimulation assembles the simulation from flags and environment,
// returning it along with the effective seed and scenario name.
func buildSimulation(cfg *config.Config) (*engine.Simulation, int64, string, error) {
	seed := cfg.Seed
	if runSeed != 0 {
		seed = runSeed
	}

	if runSpawn > 0 {
		if seed == 0 {
			seed = 42
		}
		spawner := agents.NewSpawner(seed)
		cast := spawner.SpawnCast(runSpawn, "village")
		return engine.NewSimulation(cast, meaning.DefaultRegistry(), seed), seed, "spawned", nil
	}

	path := runScenario
	if path == "" {
		path = cfg.ScenarioPath
	}

	var sc *scenario.Scenario
	if path != "" {
		var err error
		sc, err = scenario.Load(path)
		if err != nil {
			return nil, 0, "", err
		}
	} else {
		sc = scenario.Default()
	}

	if seed == 0 {
		seed = sc.Seed
	}
	cast, err := sc.Build()
	if err != nil {
		return nil, 0, "", err
	}
	sim := engine.NewSimulation(cast, meaning.DefaultRegistry(), seed)
	sc.SeedGraph(cast, sim.Graph)
	return sim, seed, sc.Name, nil
}
