package analysis

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/roadpath/roadgraph"
)

// timeLayout sorts lexically, unlike RFC3339Nano which trims zeros.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// NewRunID returns a fresh identifier for Save.
func NewRunID() string {
	return uuid.NewString()
}

// Store persists analysis runs in SQLite.
type Store struct {
	db *sql.DB
}

// RunInfo summarizes one stored run.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	Records   int
	Failed    int
}

// OpenStore opens or creates the database at path. It enables WAL mode and
// foreign keys, then migrates the schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		scenario TEXT NOT NULL,
		map TEXT NOT NULL,
		from_ref TEXT NOT NULL,
		to_ref TEXT NOT NULL,
		start_id INTEGER NOT NULL,
		goal_id INTEGER NOT NULL,
		astar_cost INTEGER NOT NULL,
		dijkstra_cost INTEGER NOT NULL,
		astar_expansions INTEGER NOT NULL,
		dijkstra_expansions INTEGER NOT NULL,
		astar_ns INTEGER NOT NULL,
		dijkstra_ns INTEGER NOT NULL,
		improvement REAL NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		path_line TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_records_status ON records(status);
	`
	_, err := s.db.Exec(query)
	return err
}

// Save stores records under runID in one transaction. Saving an existing
// runID fails.
func (s *Store) Save(ctx context.Context, runID string, records []Record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `INSERT INTO runs (run_id, created_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			run_id, seq, scenario, map, from_ref, to_ref, start_id, goal_id,
			astar_cost, dijkstra_cost, astar_expansions, dijkstra_expansions,
			astar_ns, dijkstra_ns, improvement, status, error, path_line
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err = stmt.ExecContext(ctx,
			runID, i, r.Scenario, r.Map, r.From, r.To, int64(r.Start), int64(r.Goal),
			r.AStarCost, r.DijkstraCost, r.AStarExpansions, r.DijkstraExpansions,
			r.AStarTime.Nanoseconds(), r.DijkstraTime.Nanoseconds(), r.Improvement,
			string(r.Status), r.Error, r.PathLine,
		); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", runID, err)
	}
	return nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.created_at, COUNT(x.seq),
		       COALESCE(SUM(CASE WHEN x.status IN ('COST_MISMATCH', 'PHANTOM_PATH', 'MISSED_PATH') THEN 1 ELSE 0 END), 0)
		FROM runs r LEFT JOIN records x ON x.run_id = r.run_id
		GROUP BY r.run_id, r.created_at
		ORDER BY r.created_at DESC, r.run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var ri RunInfo
		var created string
		if err := rows.Scan(&ri.ID, &created, &ri.Records, &ri.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if ri.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("bad created_at %q: %w", created, err)
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

// Records returns the records of runID in their original order.
func (s *Store) Records(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario, map, from_ref, to_ref, start_id, goal_id,
		       astar_cost, dijkstra_cost, astar_expansions, dijkstra_expansions,
		       astar_ns, dijkstra_ns, improvement, status, error, path_line
		FROM records WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var start, goal, astarNS, dijkstraNS int64
		var status string
		if err := rows.Scan(&r.Scenario, &r.Map, &r.From, &r.To, &start, &goal,
			&r.AStarCost, &r.DijkstraCost, &r.AStarExpansions, &r.DijkstraExpansions,
			&astarNS, &dijkstraNS, &r.Improvement, &status, &r.Error, &r.PathLine); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Start, r.Goal = roadgraph.NodeID(start), roadgraph.NodeID(goal)
		r.AStarTime, r.DijkstraTime = time.Duration(astarNS), time.Duration(dijkstraNS)
		r.Status = Status(status)
		out = append(out, r)
	}
	return out, rows.Err()
}
