package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/property-search/internal/search"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionStore keeps one search.Session per browser session in memory.
type SessionStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*search.Session

	// sessions idle for longer than maxAge are pruned (0 = never)
	maxAge time.Duration

	now func() time.Time
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(maxAge time.Duration) *SessionStore {
	return &SessionStore{
		data:   make(map[string]*search.Session),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Create registers a fresh session under a random id.
func (s *SessionStore) Create() *search.Session {
	sess := search.NewSession(uuid.NewString(), s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sess.ID()] = sess
	return sess
}

// Get returns the session for id and records the access. A session idle
// for at least maxAge is dropped here even if no sweep has run yet.
func (s *SessionStore) Get(id string) (*search.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if s.expired(sess, now) {
		s.mu.Lock()
		if s.data[id] == sess {
			delete(s.data, id)
		}
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	sess.Touch(now)
	return sess, nil
}

func (s *SessionStore) expired(sess *search.Session, now time.Time) bool {
	return s.maxAge > 0 && !sess.LastSeen().After(now.Add(-s.maxAge))
}

// Prune removes sessions idle for at least maxAge and returns how many.
func (s *SessionStore) Prune(now time.Time) int {
	if s.maxAge <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.data {
		if s.expired(sess, now) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Name identifies the store in sweeper logs.
func (s *SessionStore) Name() string {
	return "sessions"
}
