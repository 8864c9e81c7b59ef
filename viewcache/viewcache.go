// Package viewcache tracks a version number per named view. Handlers bump a
// view after a successful mutation; readers surface the version so clients
// know when a cached render has gone stale.
package viewcache

import (
	"fmt"
	"sync"
)

const Dashboard = "dashboard"

// DeckView names the detail view for one deck.
func DeckView(deckID uint) string {
	return fmt.Sprintf("deck:%d", deckID)
}

type Views struct {
	mu       sync.Mutex
	versions map[string]uint64
}

func New() *Views {
	return &Views{versions: make(map[string]uint64)}
}

// Bump marks the named views stale.
func (v *Views) Bump(names ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, name := range names {
		v.versions[name]++
	}
}

// Version returns the current version of a view. An unbumped view is 0.
func (v *Views) Version(name string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.versions[name]
}
