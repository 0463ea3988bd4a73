package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamops/dreamops/internal/models"
)

func TestCreateDemoRun(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runID := uuid.NewString()
	run, err := CreateDemoRun(db, runID, "builtin", 2)
	require.NoError(t, err)

	assert.Equal(t, runID, run.ID)
	assert.Equal(t, "builtin", run.Script)
	assert.Equal(t, float64(2), run.Speed)
	assert.Equal(t, models.DemoRunStatusRunning, run.Status)
	assert.Zero(t, run.StepsCompleted)
	assert.Nil(t, run.CompletedAt)
	assert.False(t, run.StartedAt.IsZero())
}

func TestFinalizeDemoRunOnce(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runID := uuid.NewString()
	_, err := CreateDemoRun(db, runID, "builtin", 1)
	require.NoError(t, err)

	run, err := FinalizeDemoRun(db, runID, models.DemoRunStatusCompleted, 7)
	require.NoError(t, err)
	assert.Equal(t, models.DemoRunStatusCompleted, run.Status)
	assert.Equal(t, 7, run.StepsCompleted)
	require.NotNil(t, run.CompletedAt)

	// A second finalize must not overwrite the terminal record.
	_, err = FinalizeDemoRun(db, runID, models.DemoRunStatusStopped, 3)
	assert.True(t, errors.Is(err, ErrRunFinalized))

	unchanged, err := GetDemoRun(db, runID)
	require.NoError(t, err)
	assert.Equal(t, models.DemoRunStatusCompleted, unchanged.Status)
	assert.Equal(t, 7, unchanged.StepsCompleted)
}

func TestFinalizeDemoRunRequiresTerminalStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runID := uuid.NewString()
	_, err := CreateDemoRun(db, runID, "builtin", 1)
	require.NoError(t, err)

	_, err = FinalizeDemoRun(db, runID, models.DemoRunStatusRunning, 1)
	require.Error(t, err)
}

func TestFinalizeDemoRunNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := FinalizeDemoRun(db, uuid.NewString(), models.DemoRunStatusStopped, 0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListDemoRunsNewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	var ids []string
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		_, err := CreateDemoRun(db, id, fmt.Sprintf("script-%d", i), 1)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := ListDemoRuns(db, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// CURRENT_TIMESTAMP has second resolution, so the id tiebreaker decides
	// within a burst. All three rows must be present regardless of order.
	seen := map[string]bool{}
	for _, r := range runs {
		seen[r.ID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id])
	}

	limited, err := ListDemoRuns(db, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
