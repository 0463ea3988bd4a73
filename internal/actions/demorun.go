package actions

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/store"
)

// DemoRunRecord inserts a running history row for a playthrough.
func DemoRunRecord(db *sql.DB, runID, script string, speed float64) (*models.DemoRun, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, errors.New("run id is required")
	}
	if script == "" {
		script = "builtin"
	}
	if speed <= 0 {
		return nil, errors.New("speed must be positive")
	}
	return store.CreateDemoRun(db, runID, script, speed)
}

// DemoRunFinalize records how a playthrough ended. stepsCompleted counts the
// steps the session reached, including the one it stopped on.
func DemoRunFinalize(db *sql.DB, runID string, status models.DemoRunStatus, stepsCompleted int) (*models.DemoRun, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, errors.New("run id is required")
	}
	if stepsCompleted < 0 {
		return nil, errors.New("steps completed must be >= 0")
	}
	return store.FinalizeDemoRun(db, runID, status, stepsCompleted)
}

// DemoRunList returns recent playthroughs, newest first.
func DemoRunList(db *sql.DB, limit int) ([]models.DemoRun, error) {
	if limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	return store.ListDemoRuns(db, limit)
}
