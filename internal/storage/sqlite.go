// Package storage provides SQLite-based persistence for harness results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/dogfight/internal/arena"
	"github.com/vovakirdan/dogfight/internal/harness"
)

// Run kinds as reported by RecentRuns.
const (
	KindSimulate = "simulate"
	KindSweep    = "sweep"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// GameRecord is one stored game, seen from the candidate side.
type GameRecord struct {
	ID           int64
	RunID        string
	Scenario     string
	Index        int
	Seed         int64
	Level        float64
	Ticks        int
	Outcome      string
	Kills        string // "tick:side:cause" entries joined by ","
	Fires        int
	Changes      int
	Oscillations int
	Collapses    int
	CreatedAt    time.Time
}

// SweepPointRecord is one stored sweep point.
type SweepPointRecord struct {
	ID             int64
	RunID          string
	Scenario       string
	Param          string
	Value          float64
	Games          int
	Wins           int
	Losses         int
	Draws          int
	Timeouts       int
	Oscillations   int
	Collapses      int
	WinRate        float64
	FiresPerGame   float64
	ChangesPerGame float64
	CreatedAt      time.Time
}

// RunInfo summarizes one stored run.
type RunInfo struct {
	RunID     string
	Kind      string
	Scenario  string
	Entries   int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Sweep workers save concurrently; one connection serializes the writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			scenario TEXT NOT NULL,
			game_index INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			level REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			kills TEXT NOT NULL DEFAULT '',
			fires INTEGER NOT NULL DEFAULT 0,
			changes INTEGER NOT NULL DEFAULT 0,
			oscillations INTEGER NOT NULL DEFAULT 0,
			collapses INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_run_id ON games(run_id);

		CREATE TABLE IF NOT EXISTS sweep_points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			scenario TEXT NOT NULL,
			param TEXT NOT NULL,
			value REAL NOT NULL,
			games INTEGER NOT NULL,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			timeouts INTEGER NOT NULL DEFAULT 0,
			oscillations INTEGER NOT NULL DEFAULT 0,
			collapses INTEGER NOT NULL DEFAULT 0,
			win_rate REAL NOT NULL DEFAULT 0,
			fires_per_game REAL NOT NULL DEFAULT 0,
			changes_per_game REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sweep_points_run_id ON sweep_points(run_id);
		CREATE INDEX IF NOT EXISTS idx_sweep_points_best ON sweep_points(run_id, win_rate DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records one game result under runID.
func (s *Store) SaveGame(ctx context.Context, runID string, r harness.GameResult) error {
	c := r.Candidate()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games
		 (run_id, scenario, game_index, seed, level, ticks, outcome, kills, fires, changes, oscillations, collapses)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Scenario, r.Index, r.Seed, r.Level, r.Ticks, string(r.Outcome),
		FormatKills(r.Kills), c.Fires, c.Changes, c.Oscillations, c.Collapses,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// SaveSweepPoint records one sweep point under runID.
func (s *Store) SaveSweepPoint(ctx context.Context, runID string, p harness.SweepPoint) error {
	sum := p.Summary
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sweep_points
		 (run_id, scenario, param, value, games, wins, losses, draws, timeouts,
		  oscillations, collapses, win_rate, fires_per_game, changes_per_game)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, sum.Scenario, p.Param, p.Value, sum.Games, sum.Wins, sum.Losses, sum.Draws, sum.Timeouts,
		sum.Oscillations, sum.Collapses, sum.WinRate(), sum.FiresPerGame(), sum.ChangesPerGame(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save sweep point: %w", err)
	}
	return nil
}

// Ensure Store implements ResultSaver
var _ harness.ResultSaver = (*Store)(nil)

// RecentRuns lists the most recent runs of either kind, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, 'simulate', MIN(scenario), COUNT(*), MAX(created_at) FROM games GROUP BY run_id
		 UNION ALL
		 SELECT run_id, 'sweep', MIN(scenario), COUNT(*), MAX(created_at) FROM sweep_points GROUP BY run_id
		 ORDER BY 5 DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		var createdAt any
		if err := rows.Scan(&r.RunID, &r.Kind, &r.Scenario, &r.Entries, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// GamesForRun returns the games of one run in play order.
func (s *Store) GamesForRun(ctx context.Context, runID string) ([]GameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, scenario, game_index, seed, level, ticks, outcome, kills,
		        fires, changes, oscillations, collapses, created_at
		 FROM games
		 WHERE run_id = ?
		 ORDER BY game_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var createdAt any
		if err := rows.Scan(
			&g.ID, &g.RunID, &g.Scenario, &g.Index, &g.Seed, &g.Level, &g.Ticks, &g.Outcome, &g.Kills,
			&g.Fires, &g.Changes, &g.Oscillations, &g.Collapses, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

const sweepColumns = `id, run_id, scenario, param, value, games, wins, losses, draws, timeouts,
	oscillations, collapses, win_rate, fires_per_game, changes_per_game, created_at`

// SweepPoints returns the points of one sweep ordered by value.
func (s *Store) SweepPoints(ctx context.Context, runID string) ([]SweepPointRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sweepColumns+`
		 FROM sweep_points
		 WHERE run_id = ?
		 ORDER BY value`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sweep points: %w", err)
	}
	defer rows.Close()

	var points []SweepPointRecord
	for rows.Next() {
		p, err := scanSweepPoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return points, nil
}

// BestSweepPoint returns the point of a sweep with the highest win rate,
// preferring fewer collapses, then fewer oscillations, then the lower value.
// This matches harness.Best.
// Returns nil if the run has no points.
func (s *Store) BestSweepPoint(ctx context.Context, runID string) (*SweepPointRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sweepColumns+`
		 FROM sweep_points
		 WHERE run_id = ?
		 ORDER BY win_rate DESC, collapses ASC, oscillations ASC, value ASC
		 LIMIT 1`,
		runID,
	)

	p, err := scanSweepPoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSweepPoint(sc scanner) (SweepPointRecord, error) {
	var p SweepPointRecord
	var createdAt any
	err := sc.Scan(
		&p.ID, &p.RunID, &p.Scenario, &p.Param, &p.Value, &p.Games, &p.Wins, &p.Losses, &p.Draws, &p.Timeouts,
		&p.Oscillations, &p.Collapses, &p.WinRate, &p.FiresPerGame, &p.ChangesPerGame, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, err
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot scan sweep point: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// FormatKills encodes kills as "tick:side:cause" entries joined by ",".
func FormatKills(kills []arena.Kill) string {
	parts := make([]string, len(kills))
	for i, k := range kills {
		parts[i] = fmt.Sprintf("%d:%s:%s", k.Tick, k.Victim, k.Cause)
	}
	return strings.Join(parts, ",")
}
