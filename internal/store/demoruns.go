package store

import (
	"database/sql"
	"fmt"

	"github.com/dreamops/dreamops/internal/models"
)

// CreateDemoRun inserts a running record for a demo playthrough. The ID is
// the engine's run ID so history rows correlate with log lines.
func CreateDemoRun(db *sql.DB, runID, script string, speed float64) (*models.DemoRun, error) {
	var run *models.DemoRun

	err := Transact(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO demo_runs (id, script, speed, status, started_at)
			VALUES (?, ?, ?, 'running', CURRENT_TIMESTAMP)
		`, runID, script, speed)
		if err != nil {
			return fmt.Errorf("failed to insert demo run: %w", err)
		}

		created, err := getDemoRunTx(tx, runID)
		if err != nil {
			return err
		}
		run = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FinalizeDemoRun records the terminal status and step count for a run.
// A run is finalized at most once: the UPDATE is guarded on status='running',
// so a second finalize returns ErrRunFinalized.
func FinalizeDemoRun(db *sql.DB, runID string, status models.DemoRunStatus, stepsCompleted int) (*models.DemoRun, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("finalize requires a terminal status, got %q", status)
	}

	var run *models.DemoRun

	err := Transact(db, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE demo_runs
			SET status = ?, steps_completed = ?, completed_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = 'running'
		`, string(status), stepsCompleted, runID)
		if err != nil {
			return fmt.Errorf("failed to finalize demo run: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			existing, err := getDemoRunTx(tx, runID)
			if err != nil {
				return err
			}
			if existing.Status.IsTerminal() {
				return ErrRunFinalized
			}
			return fmt.Errorf("failed to finalize demo run %s", runID)
		}

		finalized, err := getDemoRunTx(tx, runID)
		if err != nil {
			return err
		}
		run = finalized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListDemoRuns returns the most recent runs, newest first. limit <= 0 means
// the default of 20.
func ListDemoRuns(db *sql.DB, limit int) ([]models.DemoRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, script, speed, steps_completed, status, started_at, completed_at
		FROM demo_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list demo runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []models.DemoRun
	for rows.Next() {
		r, err := scanDemoRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetDemoRun fetches a run by ID. Returns ErrNotFound when absent.
func GetDemoRun(db *sql.DB, runID string) (*models.DemoRun, error) {
	row := db.QueryRow(`
		SELECT id, script, speed, steps_completed, status, started_at, completed_at
		FROM demo_runs WHERE id = ?
	`, runID)
	r, err := scanDemoRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return r, err
}

func getDemoRunTx(tx *sql.Tx, runID string) (*models.DemoRun, error) {
	row := tx.QueryRow(`
		SELECT id, script, speed, steps_completed, status, started_at, completed_at
		FROM demo_runs WHERE id = ?
	`, runID)
	r, err := scanDemoRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return r, err
}

func scanDemoRun(row rowScanner) (*models.DemoRun, error) {
	var r models.DemoRun
	var status string
	var completedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.Script, &r.Speed, &r.StepsCompleted, &status, &r.StartedAt, &completedAt); err != nil {
		return nil, err
	}
	r.Status = models.DemoRunStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		r.CompletedAt = &t
	}
	return &r, nil
}
