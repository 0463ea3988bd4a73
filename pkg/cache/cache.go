package cache

import "time"

// Cache is a namespaced key-value cache with optional TTL.
type Cache interface {
	Set(namespace, key, value string, opts ...Option) error
	Get(namespace, key string) (Entry, bool)
	Delete(namespace, key string) bool
	List(namespace string) []Entry
	Len() int
}

// Entry represents a cached key-value pair.
type Entry struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	Namespace string     `json:"namespace"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type setOptions struct {
	ttl time.Duration
}

// Option configures a Set operation.
type Option func(*setOptions)

// WithTTL sets a time-to-live on the entry.
func WithTTL(d time.Duration) Option {
	return func(o *setOptions) {
		o.ttl = d
	}
}
