// Package nav tracks the top-level page and remembers it across sessions.
package nav

import (
	"github.com/five82/energy/internal/browse"
	"github.com/five82/energy/internal/kv"
)

// StorageKey holds the last selected page.
const StorageKey = "page"

// Switcher owns the active page selection.
type Switcher struct {
	cache  *kv.Cache
	active browse.Mode
}

// New restores the saved page. Missing, corrupt or unknown values select
// home and are cleared from storage.
func New(cache *kv.Cache) *Switcher {
	active := browse.Mode(kv.ReadJSON(cache, StorageKey, ""))
	if !active.Valid() {
		cache.Remove(StorageKey)
		active = browse.ModeHome
	}
	return &Switcher{cache: cache, active: active}
}

// Active returns the selected page.
func (s *Switcher) Active() browse.Mode { return s.active }

// Select switches to mode and persists it. It reports whether the page
// changed; selecting the active page or an unknown mode does nothing.
func (s *Switcher) Select(mode browse.Mode) bool {
	if !mode.Valid() || mode == s.active {
		return false
	}
	s.active = mode
	s.cache.WriteJSON(StorageKey, string(mode))
	return true
}

// Toggle flips between home and favorites.
func (s *Switcher) Toggle() browse.Mode {
	if s.active == browse.ModeHome {
		s.Select(browse.ModeFavorites)
	} else {
		s.Select(browse.ModeHome)
	}
	return s.active
}

// Enter returns the machine transition that shows the active page.
func (s *Switcher) Enter(m *browse.Machine) (browse.Request, bool) {
	if s.active == browse.ModeFavorites {
		return m.EnterFavoritesMode()
	}
	return m.EnterHomeMode()
}
