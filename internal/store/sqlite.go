package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"amrsim/internal/sim"
)

var ErrUnknownRun = errors.New("unknown run")

type RunMeta struct {
	ID              string
	StartedAt       time.Time
	Seed            int64
	Population      int
	StepsRequested  int
	Workers         int
	TrackedBacteria string
	Clamp           bool
}

// StepRow is one persisted step report.
type StepRow struct {
	Step      int
	Tracked   bool
	Infected  int
	Septic    int
	MeanLevel float64
	OnDrugs   int
	Sample    sim.Snapshot
}

type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" is accepted.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection: one writer, and ":memory:" stays one database.
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// BeginRun records a new run and returns its id. The ID and StartedAt
// fields of m are ignored.
func (s *SQLiteStore) BeginRun(ctx context.Context, m RunMeta) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, seed, population, steps_requested, workers, tracked_bacteria, clamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), m.Seed, m.Population,
		m.StepsRequested, m.Workers, m.TrackedBacteria, m.Clamp)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

const insertStep = `INSERT INTO step_reports (run_id, step, tracked, infected, septic, mean_level, on_drugs, sample)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveStep(ctx context.Context, db execer, runID string, rep sim.StepReport) error {
	sample, err := json.Marshal(rep.Sample)
	if err != nil {
		return fmt.Errorf("failed to encode sample: %w", err)
	}
	_, err = db.ExecContext(ctx, insertStep,
		runID, rep.Step, rep.Tracked, rep.Infected, rep.Septic, rep.MeanLevel, rep.OnDrugs, string(sample))
	if err != nil {
		return fmt.Errorf("failed to insert step %d: %w", rep.Step, err)
	}
	return nil
}

func (s *SQLiteStore) SaveStep(ctx context.Context, runID string, rep sim.StepReport) error {
	return saveStep(ctx, s.db, runID, rep)
}

// SaveSteps writes every report in one transaction. Either all rows land
// or none do.
func (s *SQLiteStore) SaveSteps(ctx context.Context, runID string, reps []sim.StepReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rep := range reps {
		if err := saveStep(ctx, tx, runID, rep); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit steps: %w", err)
	}
	return nil
}

// Runs lists recorded runs, oldest first.
func (s *SQLiteStore) Runs(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, seed, population, steps_requested, workers, tracked_bacteria, clamp
		 FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunMeta
	for rows.Next() {
		var m RunMeta
		var started string
		if err := rows.Scan(&m.ID, &started, &m.Seed, &m.Population, &m.StepsRequested, &m.Workers, &m.TrackedBacteria, &m.Clamp); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		m.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", m.ID, started, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Steps returns every stored step of a run in step order.
func (s *SQLiteStore) Steps(ctx context.Context, runID string) ([]StepRow, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT step, tracked, infected, septic, mean_level, on_drugs, sample
		 FROM step_reports WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	var out []StepRow
	for rows.Next() {
		var row StepRow
		var sample string
		if err := rows.Scan(&row.Step, &row.Tracked, &row.Infected, &row.Septic, &row.MeanLevel, &row.OnDrugs, &sample); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		if err := json.Unmarshal([]byte(sample), &row.Sample); err != nil {
			return nil, fmt.Errorf("failed to decode sample for step %d: %w", row.Step, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
