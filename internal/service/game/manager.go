package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-tcp/pkg/uid"
)

// SessionManager keeps track of the sessions currently served. Every session
// owns its board; the manager only holds references for lookup and cleanup.
type SessionManager struct {
	sessions map[string]*Session // sessionID → Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// CreateSession builds and registers a session. An empty ID gets a fresh one.
func (sm *SessionManager) CreateSession(opts Options) *Session {
	if opts.ID == "" {
		opts.ID = uid.GenerateSessionID()
	}
	session := NewSession(opts)

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s (%s, peer %s)", session.ID, session.Transport, session.RemoteAddr)
	return session
}

func (sm *SessionManager) GetSession(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[sessionID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(sessionID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[sessionID]; !exists {
		return fmt.Errorf("session %s not found", sessionID)
	}

	log.Printf("[SESSION] Removing session %s", sessionID)
	delete(sm.sessions, sessionID)
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ActiveSessions returns snapshots of the sessions still being played, oldest first.
func (sm *SessionManager) ActiveSessions() []Snapshot {
	sm.mu.RLock()
	list := make([]*Session, 0, len(sm.sessions))
	for _, session := range sm.sessions {
		list = append(list, session)
	}
	sm.mu.RUnlock()

	active := make([]Snapshot, 0, len(list))
	for _, session := range list {
		snap := session.Snapshot()
		if !snap.Finished {
			active = append(active, snap)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active
}

// CleanupOldSessions drops finished sessions older than finishedTTL and
// sessions that have been running for longer than staleTTL.
func (sm *SessionManager) CleanupOldSessions(finishedTTL, staleTTL time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for sessionID, session := range sm.sessions {
		snap := session.Snapshot()
		if snap.Finished {
			if now.Sub(snap.FinishedAt) > finishedTTL {
				delete(sm.sessions, sessionID)
				count++
			}
		} else if now.Sub(snap.CreatedAt) > staleTTL {
			delete(sm.sessions, sessionID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", count)
	}
	return count
}
