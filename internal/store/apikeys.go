package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dreamops/dreamops/internal/models"
)

// GenerateAPIKeyID generates an API key ID using pattern: key_<unix_nano>_<random_hex>.
func GenerateAPIKeyID() string {
	return generatePrefixedID("key")
}

// HashKey returns the hex SHA-256 digest of a plaintext key. The digest is
// the only form the database ever sees.
func HashKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// CreateAPIKey stores a new key for a provider. Only the hash and masked form
// are persisted; the plaintext never reaches the database. When the provider
// has no primary key yet, the new key becomes primary, otherwise fallback.
func CreateAPIKey(db *sql.DB, provider, plaintext string) (*models.APIKey, error) {
	var key *models.APIKey

	err := Transact(db, func(tx *sql.Tx) error {
		var primaries int
		if err := tx.QueryRow(`
			SELECT COUNT(*) FROM api_keys WHERE provider = ? AND role = 'primary'
		`, provider).Scan(&primaries); err != nil {
			return fmt.Errorf("failed to count primary keys: %w", err)
		}

		role := models.APIKeyRoleFallback
		if primaries == 0 {
			role = models.APIKeyRolePrimary
		}

		id := GenerateAPIKeyID()
		masked := models.MaskKey(plaintext)
		_, err := tx.Exec(`
			INSERT INTO api_keys (id, provider, masked, key_hash, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`, id, provider, masked, HashKey(plaintext), string(role))
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				return &DuplicateKeyError{Provider: provider, Masked: masked}
			}
			return fmt.Errorf("failed to insert api key: %w", err)
		}

		created, err := getAPIKeyTx(tx, id)
		if err != nil {
			return err
		}
		key = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

// ListAPIKeys returns stored keys, optionally filtered by provider, primary
// first within each provider.
func ListAPIKeys(db *sql.DB, provider string) ([]models.APIKey, error) {
	query := `
		SELECT id, provider, masked, key_hash, role, created_at, updated_at
		FROM api_keys
	`
	args := []any{}
	if provider != "" {
		query += ` WHERE provider = ?`
		args = append(args, provider)
	}
	query += ` ORDER BY provider, CASE role WHEN 'primary' THEN 0 ELSE 1 END, created_at`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []models.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, *k)
	}
	return keys, rows.Err()
}

// GetAPIKey fetches a single key by ID. Returns ErrNotFound when absent.
func GetAPIKey(db *sql.DB, id string) (*models.APIKey, error) {
	row := db.QueryRow(`
		SELECT id, provider, masked, key_hash, role, created_at, updated_at
		FROM api_keys WHERE id = ?
	`, id)
	k, err := scanAPIKey(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return k, err
}

// PromoteAPIKey makes the given key its provider's primary. The previous
// primary (if any) is demoted to fallback in the same transaction, so the
// single-primary invariant holds at every commit point.
func PromoteAPIKey(db *sql.DB, id string) (*models.APIKey, error) {
	var key *models.APIKey

	err := Transact(db, func(tx *sql.Tx) error {
		current, err := getAPIKeyTx(tx, id)
		if err != nil {
			return err
		}
		if current.Role == models.APIKeyRolePrimary {
			key = current
			return nil
		}

		// Demote first so the partial unique index never sees two primaries.
		if _, err := tx.Exec(`
			UPDATE api_keys SET role = 'fallback', updated_at = CURRENT_TIMESTAMP
			WHERE provider = ? AND role = 'primary'
		`, current.Provider); err != nil {
			return fmt.Errorf("failed to demote primary key: %w", err)
		}

		if _, err := tx.Exec(`
			UPDATE api_keys SET role = 'primary', updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, id); err != nil {
			return fmt.Errorf("failed to promote key: %w", err)
		}

		promoted, err := getAPIKeyTx(tx, id)
		if err != nil {
			return err
		}
		key = promoted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

// DeleteAPIKey removes a key by ID. Returns ErrNotFound when absent.
func DeleteAPIKey(db *sql.DB, id string) error {
	return Transact(db, func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM api_keys WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete api key: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// VerifyAPIKey checks whether a plaintext key is stored for the provider,
// comparing hashes only. Returns the matching record or ErrNotFound.
func VerifyAPIKey(db *sql.DB, provider, plaintext string) (*models.APIKey, error) {
	row := db.QueryRow(`
		SELECT id, provider, masked, key_hash, role, created_at, updated_at
		FROM api_keys WHERE provider = ? AND key_hash = ?
	`, provider, HashKey(plaintext))
	k, err := scanAPIKey(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return k, err
}

func getAPIKeyTx(tx *sql.Tx, id string) (*models.APIKey, error) {
	row := tx.QueryRow(`
		SELECT id, provider, masked, key_hash, role, created_at, updated_at
		FROM api_keys WHERE id = ?
	`, id)
	k, err := scanAPIKey(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return k, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAPIKey(row rowScanner) (*models.APIKey, error) {
	var k models.APIKey
	var role string
	if err := row.Scan(&k.ID, &k.Provider, &k.Masked, &k.KeyHash, &role, &k.CreatedAt, &k.UpdatedAt); err != nil {
		return nil, err
	}
	k.Role = models.APIKeyRole(role)
	return &k, nil
}
