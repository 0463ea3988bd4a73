package store

import (
	"errors"

	"github.com/dreamops/dreamops/internal/models"
)

// RecoverableError is an alias for models.RecoverableError, retained so
// callers can reference store.RecoverableError without importing models.
type RecoverableError = models.RecoverableError

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("record not found")

// ErrRunFinalized is returned when finalizing a demo run that already
// reached a terminal status.
var ErrRunFinalized = errors.New("demo run already finalized")

// DuplicateKeyError is returned when adding an API key whose hash already
// exists for the provider.
type DuplicateKeyError struct {
	Provider string
	Masked   string
}

func (e *DuplicateKeyError) Error() string { return "api key already stored for provider" }

// ErrorCode implements models.RecoverableError.
func (e *DuplicateKeyError) ErrorCode() string { return "DUPLICATE_KEY" }

// Context implements models.RecoverableError.
func (e *DuplicateKeyError) Context() map[string]string {
	return map[string]string{
		"provider": e.Provider,
		"masked":   e.Masked,
	}
}

// SuggestedAction implements models.RecoverableError.
func (e *DuplicateKeyError) SuggestedAction() string {
	return "dreamops apikey list --provider " + e.Provider
}

// UnknownIntegrationError is returned when enabling or disabling an
// integration that is not in the catalog.
type UnknownIntegrationError struct {
	Name string
}

func (e *UnknownIntegrationError) Error() string { return "unknown integration" }

// ErrorCode implements models.RecoverableError.
func (e *UnknownIntegrationError) ErrorCode() string { return "UNKNOWN_INTEGRATION" }

// Context implements models.RecoverableError.
func (e *UnknownIntegrationError) Context() map[string]string {
	return map[string]string{"name": e.Name}
}

// SuggestedAction implements models.RecoverableError.
func (e *UnknownIntegrationError) SuggestedAction() string {
	return "dreamops integration list"
}
