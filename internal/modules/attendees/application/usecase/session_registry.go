package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"passInWeb/internal/shared/metrics"
)

// SessionRegistry tracks the live views attached to this process.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*ViewSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*ViewSession)}
}

func (r *SessionRegistry) Add(session *ViewSession) {
	if session == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.ID()]; !exists {
		metrics.SessionOpened()
	}
	r.sessions[session.ID()] = session
}

func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	session.Close()
	metrics.SessionClosed()
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// RefreshAll re-fetches every attached session; observers push the results.
func (r *SessionRegistry) RefreshAll(ctx context.Context) {
	r.mu.RLock()
	sessions := make([]*ViewSession, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	r.mu.RUnlock()

	for _, session := range sessions {
		if _, err := session.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			slog.Warn("live view refresh failed", slog.String("sessionId", session.ID()), slog.Any("error", err))
		}
	}
}
