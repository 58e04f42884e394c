package recipe

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWorkspaceLifetime is how long an untouched workspace survives
// when the registry is built without an explicit lifetime.
const DefaultWorkspaceLifetime = 24 * time.Hour

// Registry hands out per-session workspaces and forgets the ones nobody
// has touched for a lifetime. Expired workspaces are swept during normal
// registry calls, so an idle process runs no timers and no goroutines.
type Registry struct {
	mu       sync.Mutex
	lifetime time.Duration
	stores   map[string]*workspace
	now      func() time.Time
}

type workspace struct {
	store    *Store
	lastSeen time.Time
}

// NewRegistry builds a registry whose workspaces expire after lifetime of
// inactivity. A non-positive lifetime falls back to
// DefaultWorkspaceLifetime.
func NewRegistry(lifetime time.Duration) *Registry {
	if lifetime <= 0 {
		lifetime = DefaultWorkspaceLifetime
	}
	return &Registry{
		lifetime: lifetime,
		stores:   make(map[string]*workspace),
		now:      time.Now,
	}
}

// Create makes a fresh workspace and returns its id and store.
func (r *Registry) Create() (string, *Store) {
	id := uuid.NewString()
	store := NewStore()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.stores[id] = &workspace{store: store, lastSeen: r.now()}
	return id, store
}

// Get returns the workspace with the given id and marks it active. A
// workspace that has expired, or never existed, reports false; the caller
// creates a replacement.
func (r *Registry) Get(id string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	ws, ok := r.stores[id]
	if !ok {
		return nil, false
	}
	ws.lastSeen = r.now()
	return ws.store, true
}

// Discard drops a workspace immediately. Absent ids are a no-op.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, id)
}

// Len reports how many live workspaces the registry holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	return len(r.stores)
}

// sweep drops workspaces idle past the lifetime. Callers must hold mu.
func (r *Registry) sweep() {
	cutoff := r.now().Add(-r.lifetime)
	for id, ws := range r.stores {
		if ws.lastSeen.Before(cutoff) {
			delete(r.stores, id)
		}
	}
}
