// Package kv provides the client's local key/value storage: string values
// under string keys, encoded as JSON, with fail-soft reads and writes.
package kv

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrUnavailable is returned by backends that cannot serve requests.
var ErrUnavailable = errors.New("kv: storage unavailable")

// Backend stores raw string values. Implementations must be safe for
// concurrent use.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Cache wraps a Backend with JSON encoding. It never returns storage errors:
// reads degrade to the caller's fallback and writes report false.
type Cache struct {
	backend Backend
	log     logrus.FieldLogger
}

// New builds a Cache over backend.
func New(backend Backend, log logrus.FieldLogger) *Cache {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cache{backend: backend, log: log}
}

// ReadJSON decodes the value stored under key. It returns fallback when the
// key is absent or empty, the value is not valid JSON for T, or the backend
// fails.
func ReadJSON[T any](c *Cache, key string, fallback T) T {
	if c == nil || c.backend == nil {
		return fallback
	}
	raw, ok, err := c.backend.Get(key)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("storage read failed")
		return fallback
	}
	if !ok || raw == "" {
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("stored value is not valid json")
		return fallback
	}
	return out
}

// WriteJSON encodes value and stores it under key. It reports whether the
// value was persisted.
func (c *Cache) WriteJSON(key string, value any) bool {
	if c == nil || c.backend == nil {
		return false
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("encode value failed")
		return false
	}
	if err := c.backend.Set(key, string(data)); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("storage write failed")
		return false
	}
	return true
}

// Remove deletes key. It reports whether the backend accepted the delete.
func (c *Cache) Remove(key string) bool {
	if c == nil || c.backend == nil {
		return false
	}
	if err := c.backend.Delete(key); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("storage delete failed")
		return false
	}
	return true
}
