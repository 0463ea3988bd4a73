package actions

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/store"
)

// IntegrationList returns the catalog ordered by name.
func IntegrationList(db *sql.DB) ([]models.Integration, error) {
	return store.ListIntegrations(db)
}

// IntegrationEnable turns a catalog entry on.
func IntegrationEnable(db *sql.DB, name string) (*models.Integration, error) {
	return setIntegration(db, name, true)
}

// IntegrationDisable turns a catalog entry off.
func IntegrationDisable(db *sql.DB, name string) (*models.Integration, error) {
	return setIntegration(db, name, false)
}

func setIntegration(db *sql.DB, name string, enabled bool) (*models.Integration, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil, errors.New("integration name is required")
	}
	return store.SetIntegrationEnabled(db, n, enabled)
}
