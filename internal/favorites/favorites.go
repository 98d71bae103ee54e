// Package favorites persists the user's favorite exercise identifiers.
//
// The set is stored as a JSON array under a single key and is re-read on
// every call; nothing is cached in memory between operations.
package favorites

import (
	"slices"

	"github.com/five82/energy/internal/kv"
)

// StorageKey is the key holding the favorites array.
const StorageKey = "favorites"

// Store reads and mutates the favorites set.
type Store struct {
	cache *kv.Cache
}

// New builds a Store over cache.
func New(cache *kv.Cache) *Store {
	return &Store{cache: cache}
}

// IDs returns the favorites in insertion order without duplicates. Storage
// failures yield an empty slice.
func (s *Store) IDs() []string {
	if s == nil {
		return []string{}
	}
	stored := kv.ReadJSON[[]string](s.cache, StorageKey, nil)
	out := make([]string, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Contains reports whether id is a favorite.
func (s *Store) Contains(id string) bool {
	return slices.Contains(s.IDs(), id)
}

// Add inserts id. It returns false when id is already present or could not
// be persisted.
func (s *Store) Add(id string) bool {
	if s == nil || id == "" {
		return false
	}
	ids := s.IDs()
	if slices.Contains(ids, id) {
		return false
	}
	return s.cache.WriteJSON(StorageKey, append(ids, id))
}

// Remove deletes id and persists the result even when id was absent. It
// returns false only when the write fails.
func (s *Store) Remove(id string) bool {
	if s == nil {
		return false
	}
	ids := slices.DeleteFunc(s.IDs(), func(candidate string) bool { return candidate == id })
	return s.cache.WriteJSON(StorageKey, ids)
}

// Toggle removes id when present and adds it otherwise. The result is the
// new membership state: false after a removal, true after an insertion.
// A failed write leaves the stored set unchanged and reports the
// membership that is actually stored.
func (s *Store) Toggle(id string) bool {
	if s == nil || id == "" {
		return false
	}
	if s.Contains(id) {
		if s.Remove(id) {
			return false
		}
		return true
	}
	return s.Add(id)
}
