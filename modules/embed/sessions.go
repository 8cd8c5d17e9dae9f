package embed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	mu      sync.Mutex
	editor  *Editor
	touched time.Time
}

// sessions tracks open editors by id. Sessions that sit idle longer than
// the ttl are dropped by expire.
type sessions struct {
	mu   sync.Mutex
	byID map[string]*session
	ttl  time.Duration
	now  func() time.Time
}

func newSessions(ttl time.Duration) *sessions {
	return &sessions{byID: map[string]*session{}, ttl: ttl, now: time.Now}
}

func (s *sessions) open(ed *Editor) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = &session{editor: ed, touched: s.now()}
	return id
}

// with runs fn while holding the session's lock. False if the session is unknown.
func (s *sessions) with(id string, fn func(*Editor)) bool {
	s.mu.Lock()
	sess, ok := s.byID[id]
	if ok {
		sess.touched = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.editor)
	return true
}

func (s *sessions) close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	delete(s.byID, id)
	return ok
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *sessions) expire(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.byID {
		if sess.touched.Before(cutoff) {
			delete(s.byID, id)
			n++
		}
	}
	if n > 0 {
		slog.Info("expired idle editor sessions", "count", n)
	}
	return false
}
