package models

import (
	"strings"
	"time"
)

// ID Strategy: store entities use string IDs in the form
// "{prefix}_{unix_nano}_{hex}" generated by the store. Demo runs instead
// carry the engine's UUID run ID so history rows correlate with log lines.

// APIKeyRole selects which key of a provider the backend client tries first.
type APIKeyRole string

// API key role constants.
const (
	APIKeyRolePrimary  APIKeyRole = "primary"
	APIKeyRoleFallback APIKeyRole = "fallback"
)

// Valid reports whether the role is a known constant.
func (r APIKeyRole) Valid() bool {
	return r == APIKeyRolePrimary || r == APIKeyRoleFallback
}

// APIKey is a stored model-provider credential. The plaintext exists only at
// creation time; the store keeps a SHA-256 hash for verification and a
// masked form for display.
type APIKey struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	Masked    string     `json:"masked"`
	KeyHash   string     `json:"-"`
	Role      APIKeyRole `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MaskKey renders a key for display: first four and last four characters
// with the middle elided. Short keys mask entirely.
func MaskKey(plaintext string) string {
	if len(plaintext) <= 8 {
		return strings.Repeat("*", len(plaintext))
	}
	return plaintext[:4] + "..." + plaintext[len(plaintext)-4:]
}

// DemoRunStatus is the lifecycle state of a recorded demo run.
type DemoRunStatus string

// Demo run status constants.
const (
	DemoRunStatusRunning   DemoRunStatus = "running"
	DemoRunStatusCompleted DemoRunStatus = "completed"
	DemoRunStatusStopped   DemoRunStatus = "stopped"
)

// IsTerminal returns true once a run can no longer change.
func (s DemoRunStatus) IsTerminal() bool {
	return s == DemoRunStatusCompleted || s == DemoRunStatusStopped
}

// DemoRun records one playthrough of a demo script.
type DemoRun struct {
	ID             string        `json:"id"`
	Script         string        `json:"script"`
	Speed          float64       `json:"speed"`
	StepsCompleted int           `json:"steps_completed"`
	Status         DemoRunStatus `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
}

// Integration is a configurable external system in the catalog.
type Integration struct {
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updated_at"`
}
