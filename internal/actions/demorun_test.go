package actions

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamops/dreamops/internal/models"
)

func TestDemoRunRecordDefaultsScript(t *testing.T) {
	db := setupActionsTestDB(t)

	run, err := DemoRunRecord(db, uuid.NewString(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, "builtin", run.Script)
}

func TestDemoRunRecordValidation(t *testing.T) {
	db := setupActionsTestDB(t)

	_, err := DemoRunRecord(db, "", "builtin", 1)
	require.Error(t, err)

	_, err = DemoRunRecord(db, uuid.NewString(), "builtin", 0)
	require.Error(t, err)
}

func TestDemoRunFinalizeAndList(t *testing.T) {
	db := setupActionsTestDB(t)

	runID := uuid.NewString()
	_, err := DemoRunRecord(db, runID, "builtin", 2)
	require.NoError(t, err)

	run, err := DemoRunFinalize(db, runID, models.DemoRunStatusStopped, 4)
	require.NoError(t, err)
	assert.Equal(t, models.DemoRunStatusStopped, run.Status)
	assert.Equal(t, 4, run.StepsCompleted)

	runs, err := DemoRunList(db, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)

	_, err = DemoRunFinalize(db, runID, models.DemoRunStatusCompleted, 7)
	require.Error(t, err, "finalize is one-shot")

	_, err = DemoRunFinalize(db, uuid.NewString(), models.DemoRunStatusCompleted, -1)
	require.Error(t, err)

	_, err = DemoRunList(db, -1)
	require.Error(t, err)
}
