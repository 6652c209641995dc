// Package persistence provides SQLite-backed storage for simulation runs.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"seosa/internal/agents"
	"seosa/internal/engine"
	"seosa/internal/meaning"
)

// DB wraps a SQLite connection for run state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		scenario TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS characters (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		location TEXT NOT NULL,
		mode INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		traits_json TEXT NOT NULL,
		needs_json TEXT NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS action_logs (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		actor_id INTEGER NOT NULL,
		target_id INTEGER,
		kind TEXT NOT NULL,
		detail TEXT NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS chronicles (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		year INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		type TEXT NOT NULL,
		summary TEXT NOT NULL,
		scope TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		run_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_logs_turn ON action_logs(run_id, turn);
	CREATE INDEX IF NOT EXISTS idx_chronicles_turn ON chronicles(run_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun registers a new run and returns its id.
func (db *DB) CreateRun(seed int64, scenario string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, scenario) VALUES (?, ?, ?)",
		id, seed, scenario,
	)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// SaveCharacters writes the full cast for a run (full replace).
func (db *DB) SaveCharacters(runID string, cast []*agents.Character) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM characters WHERE run_id = ?", runID); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO characters
		(run_id, id, name, location, mode, alive, traits_json, needs_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cast {
		traitsJSON, _ := json.Marshal(c.Traits)
		needsJSON, _ := json.Marshal(c.Needs)

		alive := 0
		if c.Alive {
			alive = 1
		}

		_, err := stmt.Exec(
			runID, c.ID, c.Name, c.Location, c.Mode, alive,
			string(traitsJSON), string(needsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert character %d: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// SaveLogs appends action logs for a run.
func (db *DB) SaveLogs(runID string, logs []agents.ActionLog) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, l := range logs {
		var target any
		if l.Action.TargetID != nil {
			target = *l.Action.TargetID
		}
		_, err := tx.Exec(
			"INSERT INTO action_logs (run_id, id, turn, actor_id, target_id, kind, detail) VALUES (?, ?, ?, ?, ?, ?, ?)",
			runID, l.ID, l.Turn, l.Action.ActorID, target, l.Action.Kind.String(), l.Action.Detail,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveChronicles appends chronicles for a run. The seq offset keeps entries
// ordered across incremental saves.
func (db *DB) SaveChronicles(runID string, offset int, chronicles []meaning.Chronicle) error {
	if len(chronicles) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, c := range chronicles {
		_, err := tx.Exec(
			"INSERT INTO chronicles (run_id, seq, year, turn, type, summary, scope) VALUES (?, ?, ?, ?, ?, ?, ?)",
			runID, offset+i, c.Year, c.Turn, string(c.Type), c.Summary, c.Scope,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair for a run.
func (db *DB) SaveMeta(runID, key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (run_id, key, value) VALUES (?, ?, ?)",
		runID, key, value,
	)
	return err
}

// GetMeta retrieves a run metadata value.
func (db *DB) GetMeta(runID, key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE run_id = ? AND key = ?", runID, key)
	return value, err
}

// SaveState performs a full incremental save of a simulation's state.
func (db *DB) SaveState(runID string, sim *engine.Simulation) error {
	slog.Info("saving run state", "run", runID, "turn", sim.World.Turn, "characters", len(sim.Characters))

	if err := db.SaveCharacters(runID, sim.Characters); err != nil {
		return fmt.Errorf("save characters: %w", err)
	}

	lastTurn := uint64(0)
	if v, err := db.GetMeta(runID, "last_turn"); err == nil {
		fmt.Sscanf(v, "%d", &lastTurn)
	}
	var fresh []agents.ActionLog
	for _, l := range sim.World.Logs {
		if l.Turn > lastTurn {
			fresh = append(fresh, l)
		}
	}
	if err := db.SaveLogs(runID, fresh); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}

	var saved int
	if err := db.conn.Get(&saved, "SELECT COUNT(*) FROM chronicles WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("count chronicles: %w", err)
	}
	if saved < len(sim.World.Chronicles) {
		if err := db.SaveChronicles(runID, saved, sim.World.Chronicles[saved:]); err != nil {
			return fmt.Errorf("save chronicles: %w", err)
		}
	}

	pressureJSON, _ := json.Marshal(sim.World.Pressure)
	tendencyJSON, _ := json.Marshal(sim.World.Tendency)
	for key, value := range map[string]string{
		"last_turn": fmt.Sprintf("%d", sim.World.Turn),
		"year":      fmt.Sprintf("%d", sim.World.Year),
		"pressure":  string(pressureJSON),
		"tendency":  string(tendencyJSON),
	} {
		if err := db.SaveMeta(runID, key, value); err != nil {
			return fmt.Errorf("save meta %s: %w", key, err)
		}
	}

	slog.Info("run state saved", "run", runID)
	return nil
}

// ChronicleRow is a stored chronicle entry.
type ChronicleRow struct {
	Year    int    `db:"year" json:"year"`
	Turn    uint64 `db:"turn" json:"turn"`
	Type    string `db:"type" json:"type"`
	Summary string `db:"summary" json:"summary"`
	Scope   string `db:"scope" json:"scope"`
}

// RecentChronicles returns the most recent N chronicles for a run,
// newest first.
func (db *DB) RecentChronicles(runID string, limit int) ([]ChronicleRow, error) {
	var rows []ChronicleRow
	err := db.conn.Select(&rows,
		"SELECT year, turn, type, summary, scope FROM chronicles WHERE run_id = ? ORDER BY seq DESC LIMIT ?",
		runID, limit,
	)
	return rows, err
}
