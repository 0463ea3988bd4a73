// Package actions contains the validation layer between CLI commands and the
// store. Commands parse flags, actions enforce domain rules, the store talks
// to SQLite.
package actions

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/store"
)

// knownProviders are the model providers the backend can route to.
var knownProviders = map[string]bool{
	"anthropic": true,
	"openai":    true,
	"gemini":    true,
}

const minKeyLength = 16

// KnownProviders returns the supported provider names, sorted.
func KnownProviders() []string {
	names := make([]string, 0, len(knownProviders))
	for name := range knownProviders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateProvider(provider string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" {
		return "", errors.New("provider is required")
	}
	if !knownProviders[p] {
		return "", fmt.Errorf("unknown provider %q (supported: %s)", provider, strings.Join(KnownProviders(), ", "))
	}
	return p, nil
}

// APIKeyAdd validates and stores a new provider key. The plaintext is hashed
// before it reaches the store and never returned.
func APIKeyAdd(db *sql.DB, provider, plaintext string) (*models.APIKey, error) {
	p, err := validateProvider(provider)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(plaintext)
	if trimmed == "" {
		return nil, errors.New("api key is required")
	}
	if len(trimmed) < minKeyLength {
		return nil, fmt.Errorf("api key too short (minimum %d characters)", minKeyLength)
	}
	if strings.ContainsAny(trimmed, " \t\n") {
		return nil, errors.New("api key must not contain whitespace")
	}

	return store.CreateAPIKey(db, p, trimmed)
}

// APIKeyList returns stored keys, optionally filtered by provider.
// Only masked forms are included.
func APIKeyList(db *sql.DB, provider string) ([]models.APIKey, error) {
	p := ""
	if provider != "" {
		valid, err := validateProvider(provider)
		if err != nil {
			return nil, err
		}
		p = valid
	}
	return store.ListAPIKeys(db, p)
}

// APIKeyPromote makes a stored key its provider's primary.
func APIKeyPromote(db *sql.DB, id string) (*models.APIKey, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("key id is required")
	}
	return store.PromoteAPIKey(db, id)
}

// APIKeyRemove deletes a stored key by ID.
func APIKeyRemove(db *sql.DB, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("key id is required")
	}
	return store.DeleteAPIKey(db, id)
}

// PrimaryKeyHashForProvider returns the key hash the backend client should
// present for a provider, preferring the primary key. Returns ErrNotFound
// when the provider has no stored keys.
func PrimaryKeyHashForProvider(db *sql.DB, provider string) (string, error) {
	p, err := validateProvider(provider)
	if err != nil {
		return "", err
	}
	keys, err := store.ListAPIKeys(db, p)
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", store.ErrNotFound
	}
	// ListAPIKeys sorts primary first.
	return keys[0].KeyHash, nil
}
