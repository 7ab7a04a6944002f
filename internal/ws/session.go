package ws

import (
	"sync"
)

// Session is what the gateway remembers about a connection after join_room.
type Session struct {
	Username string
	Room     string
}

// SessionStore abstracts the connection-to-session map so it can be backed
// by an external store for multi-instance deployments without changing
// call sites. The default is in-memory: lost on restart, clients rejoin.
type SessionStore interface {
	Set(connID string, s Session)
	Get(connID string) (Session, bool)
	Delete(connID string)
	Count() int
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]Session)}
}

func (s *memorySessionStore) Set(connID string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[connID] = sess
}

func (s *memorySessionStore) Get(connID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[connID]
	return sess, ok
}

func (s *memorySessionStore) Delete(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, connID)
}

func (s *memorySessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
