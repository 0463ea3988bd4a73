package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamops/dreamops/internal/store"
)

func TestIntegrationEnableDisable(t *testing.T) {
	db := setupActionsTestDB(t)

	enabled, err := IntegrationEnable(db, " Slack ")
	require.NoError(t, err)
	assert.True(t, enabled.Enabled)
	assert.Equal(t, "slack", enabled.Name)

	disabled, err := IntegrationDisable(db, "slack")
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)
}

func TestIntegrationEnableUnknown(t *testing.T) {
	db := setupActionsTestDB(t)

	_, err := IntegrationEnable(db, "jira")
	var unknown *store.UnknownIntegrationError
	require.ErrorAs(t, err, &unknown)

	_, err = IntegrationEnable(db, "")
	require.Error(t, err)
}

func TestIntegrationList(t *testing.T) {
	db := setupActionsTestDB(t)

	list, err := IntegrationList(db)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}
