package overlay

import (
	"context"
	"sync"

	"housingbuddy/internal/translate"
	"housingbuddy/internal/uistate"
)

const defaultMaxSessions = 10000

// Registry hands out the Session of each browser session, restoring it from
// the UI state store on first use. Idle sessions may be evicted; their
// state comes back from the store.
type Registry struct {
	store uistate.Store
	langs *translate.Languages
	max   int

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(store uistate.Store, langs *translate.Languages) *Registry {
	return &Registry{store: store, langs: langs, max: defaultMaxSessions, sessions: map[string]*Session{}}
}

func (r *Registry) Session(ctx context.Context, sid string) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[sid]; ok {
		r.mu.Unlock()
		return s
	}
	if len(r.sessions) >= r.max {
		r.evictIdleLocked()
	}
	s := newSession(sid, r.store, r.langs)
	s.mu.Lock()
	r.sessions[sid] = s
	r.mu.Unlock()

	s.restoreLocked(ctx)
	s.mu.Unlock()
	return s
}

func (r *Registry) evictIdleLocked() {
	for sid, s := range r.sessions {
		if s.mu.TryRLock() {
			idle := !s.translating
			s.mu.RUnlock()
			if idle {
				delete(r.sessions, sid)
				return
			}
		}
	}
}
