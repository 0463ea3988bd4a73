package store

import (
	"database/sql"
	"fmt"
)

// StatusCounts summarizes row counts for the status command.
type StatusCounts struct {
	APIKeys             int `json:"api_keys"`
	DemoRuns            int `json:"demo_runs"`
	Integrations        int `json:"integrations"`
	IntegrationsEnabled int `json:"integrations_enabled"`
}

// GetStatusCounts returns table counts for the status overview.
func GetStatusCounts(db *sql.DB) (*StatusCounts, error) {
	counts := &StatusCounts{}

	queries := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM api_keys`, &counts.APIKeys},
		{`SELECT COUNT(*) FROM demo_runs`, &counts.DemoRuns},
		{`SELECT COUNT(*) FROM integrations`, &counts.Integrations},
		{`SELECT COUNT(*) FROM integrations WHERE enabled = 1`, &counts.IntegrationsEnabled},
	}
	for _, q := range queries {
		if err := db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}
	return counts, nil
}
