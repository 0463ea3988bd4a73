package actions

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/store"
)

func setupActionsTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.InitDBWithPath(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAPIKeyAddValidation(t *testing.T) {
	db := setupActionsTestDB(t)

	cases := []struct {
		name     string
		provider string
		key      string
		wantErr  string
	}{
		{"empty provider", "", "sk-valid-key-0000000000", "provider is required"},
		{"unknown provider", "mistral", "sk-valid-key-0000000000", "unknown provider"},
		{"empty key", "openai", "", "api key is required"},
		{"short key", "openai", "sk-short", "too short"},
		{"whitespace key", "openai", "sk-bad key-000000000000", "whitespace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := APIKeyAdd(db, tc.provider, tc.key)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestAPIKeyAddNormalizesProvider(t *testing.T) {
	db := setupActionsTestDB(t)

	key, err := APIKeyAdd(db, "  Anthropic ", "sk-ant-valid-key-000000000")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", key.Provider)
	assert.Equal(t, models.APIKeyRolePrimary, key.Role)
}

func TestAPIKeyListFiltersByProvider(t *testing.T) {
	db := setupActionsTestDB(t)

	_, err := APIKeyAdd(db, "openai", "sk-openai-valid-key-000000")
	require.NoError(t, err)
	_, err = APIKeyAdd(db, "gemini", "sk-gemini-valid-key-111111")
	require.NoError(t, err)

	all, err := APIKeyList(db, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	openai, err := APIKeyList(db, "openai")
	require.NoError(t, err)
	require.Len(t, openai, 1)
	assert.Equal(t, "openai", openai[0].Provider)

	_, err = APIKeyList(db, "bogus")
	require.Error(t, err)
}

func TestAPIKeyPromoteAndRemove(t *testing.T) {
	db := setupActionsTestDB(t)

	first, err := APIKeyAdd(db, "anthropic", "sk-ant-first-key-000000000")
	require.NoError(t, err)
	second, err := APIKeyAdd(db, "anthropic", "sk-ant-second-key-11111111")
	require.NoError(t, err)

	promoted, err := APIKeyPromote(db, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.APIKeyRolePrimary, promoted.Role)

	require.NoError(t, APIKeyRemove(db, first.ID))
	remaining, err := APIKeyList(db, "anthropic")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)

	_, err = APIKeyPromote(db, "")
	require.Error(t, err)
	require.Error(t, APIKeyRemove(db, ""))
}

func TestPrimaryKeyHashForProvider(t *testing.T) {
	db := setupActionsTestDB(t)

	_, err := PrimaryKeyHashForProvider(db, "openai")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	_, err = APIKeyAdd(db, "openai", "sk-openai-fallback-key-000")
	require.NoError(t, err)
	second, err := APIKeyAdd(db, "openai", "sk-openai-promoted-key-111")
	require.NoError(t, err)
	_, err = APIKeyPromote(db, second.ID)
	require.NoError(t, err)

	hash, err := PrimaryKeyHashForProvider(db, "openai")
	require.NoError(t, err)
	assert.Equal(t, second.KeyHash, hash)
}
