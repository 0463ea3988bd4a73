package store

import (
	"database/sql"
	"fmt"

	"github.com/dreamops/dreamops/internal/models"
)

// ListIntegrations returns the full catalog ordered by name.
func ListIntegrations(db *sql.DB) ([]models.Integration, error) {
	rows, err := db.Query(`
		SELECT name, kind, description, enabled, updated_at
		FROM integrations
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Integration
	for rows.Next() {
		var in models.Integration
		var enabled int
		if err := rows.Scan(&in.Name, &in.Kind, &in.Description, &enabled, &in.UpdatedAt); err != nil {
			return nil, err
		}
		in.Enabled = enabled != 0
		out = append(out, in)
	}
	return out, rows.Err()
}

// GetIntegration fetches one catalog entry by name.
func GetIntegration(db *sql.DB, name string) (*models.Integration, error) {
	row := db.QueryRow(`
		SELECT name, kind, description, enabled, updated_at
		FROM integrations WHERE name = ?
	`, name)

	var in models.Integration
	var enabled int
	err := row.Scan(&in.Name, &in.Kind, &in.Description, &enabled, &in.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &UnknownIntegrationError{Name: name}
	}
	if err != nil {
		return nil, err
	}
	in.Enabled = enabled != 0
	return &in, nil
}

// SetIntegrationEnabled flips the enabled flag for a catalog entry.
// Unknown names return UnknownIntegrationError.
func SetIntegrationEnabled(db *sql.DB, name string, enabled bool) (*models.Integration, error) {
	var updated *models.Integration

	err := Transact(db, func(tx *sql.Tx) error {
		val := 0
		if enabled {
			val = 1
		}
		result, err := tx.Exec(`
			UPDATE integrations SET enabled = ?, updated_at = CURRENT_TIMESTAMP
			WHERE name = ?
		`, val, name)
		if err != nil {
			return fmt.Errorf("failed to update integration: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return &UnknownIntegrationError{Name: name}
		}

		row := tx.QueryRow(`
			SELECT name, kind, description, enabled, updated_at
			FROM integrations WHERE name = ?
		`, name)
		var in models.Integration
		var enabledCol int
		if err := row.Scan(&in.Name, &in.Kind, &in.Description, &enabledCol, &in.UpdatedAt); err != nil {
			return err
		}
		in.Enabled = enabledCol != 0
		updated = &in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
