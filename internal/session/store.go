// Package session keeps deep search sessions in memory, one per search.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/search"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("search session not found or expired")

type entry struct {
	session   search.Session
	expiresAt time.Time
}

type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

// Open stores a fresh session under a new id and returns it.
func (s *Store) Open(sess search.Session) search.Session {
	sess.ID = uuid.NewString()
	sess.Relaxations = 0
	sess.Exhausted = false

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = entry{session: sess, expiresAt: s.now().Add(s.ttl)}
	return sess
}

func (s *Store) Get(id string) (search.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || s.now().After(e.expiresAt) {
		return search.Session{}, false
	}
	return e.session, true
}

// Update applies fn to the session while holding the store lock, so two
// concurrent steps on one session cannot both read the same counter.
func (s *Store) Update(id string, fn func(search.Session) search.Session) (search.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.sessions, id)
		return search.Session{}, ErrNotFound
	}
	next := fn(e.session)
	next.ID = id
	s.sessions[id] = entry{session: next, expiresAt: s.now().Add(s.ttl)}
	return next, nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
