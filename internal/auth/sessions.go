// Package auth keeps server-side login sessions and the gin middleware that
// resolves them into the current user.
package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// SessionStore holds sessions in memory. Expired sessions are dropped when
// looked up and by Prune.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	nowFn    func() time.Time
}

func NewSessionStore(ttl time.Duration, nowFn func() time.Time) *SessionStore {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		nowFn:    nowFn,
	}
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

func (s *SessionStore) Create(userID int64) Session {
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.nowFn().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) Lookup(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if !s.nowFn().Before(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Prune removes every expired session and reports how many were removed.
func (s *SessionStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	removed := 0
	for token, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunPruner calls Prune every interval until ctx is done.
func (s *SessionStore) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				log.Printf("[INFO] RunPruner: removed %d expired session(s)", n)
			}
		}
	}
}
