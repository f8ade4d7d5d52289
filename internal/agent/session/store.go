// Package session manages per-user conversation state for the process
// lifetime. No persistence: everything here lives in memory.
package session

import (
	"sync"
	"time"

	"news-agent/internal/common/logger"
	"news-agent/internal/common/metrics"
	"news-agent/internal/models"
)

// Session is one user's durable-in-memory state: preferences plus an
// append-only conversation history. Each session carries its own lock so
// unrelated users never serialize on each other.
type Session struct {
	UserID string

	mu          sync.Mutex
	preferences models.Preferences
	history     []models.ConversationTurn
	lastActive  time.Time
}

// Store is a concurrent map of user id to Session. The store lock guards the
// map only; session content is guarded per session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	maxIdle time.Duration
	logger  logger.Logger
	nowFn   func() time.Time
}

// NewStore creates a Store. maxIdle of 0 disables idle eviction.
func NewStore(maxIdle time.Duration, log logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		maxIdle:  maxIdle,
		logger:   log.With(map[string]interface{}{"component": "session-store"}),
		nowFn:    time.Now,
	}
}

// GetOrCreate returns the session for userID, creating it with default
// preferences and empty history on first access.
func (s *Store) GetOrCreate(userID string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		sess.touch(s.nowFn())
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock; another caller may have won the race.
	if sess, ok := s.sessions[userID]; ok {
		sess.touch(s.nowFn())
		return sess
	}

	sess = &Session{
		UserID:      userID,
		preferences: models.DefaultPreferences(),
		history:     []models.ConversationTurn{},
		lastActive:  s.nowFn(),
	}
	s.sessions[userID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))

	s.logger.Info("session created", map[string]interface{}{
		"userId": userID,
	})

	return sess
}

// AppendTurn appends one turn to the user's history. Append-only: turns are
// never overwritten or reordered.
func (s *Store) AppendTurn(userID string, role models.Role, content string) {
	sess := s.GetOrCreate(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.history = append(sess.history, models.ConversationTurn{Role: role, Content: content})
}

// History returns a copy of the user's conversation history in order.
func (s *Store) History(userID string) []models.ConversationTurn {
	sess := s.GetOrCreate(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]models.ConversationTurn, len(sess.history))
	copy(out, sess.history)
	return out
}

// ClearHistory resets the user's history to empty. Preferences are untouched.
func (s *Store) ClearHistory(userID string) {
	sess := s.GetOrCreate(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.history = []models.ConversationTurn{}
}

// Preferences returns a copy of the user's current preferences.
func (s *Store) Preferences(userID string) models.Preferences {
	sess := s.GetOrCreate(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.preferences.Clone()
}

// MergePreferences shallow-merges the partial update into the user's
// preferences and returns the resulting full preferences.
func (s *Store) MergePreferences(userID string, update models.PreferencesUpdate) models.Preferences {
	sess := s.GetOrCreate(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	update.Apply(&sess.preferences)
	return sess.preferences.Clone()
}

// SweepIdle evicts sessions idle longer than maxIdle and returns the number
// evicted. No-op when eviction is disabled.
func (s *Store) SweepIdle() int {
	if s.maxIdle == 0 {
		return 0
	}

	cutoff := s.nowFn().Add(-s.maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))

	if evicted > 0 {
		s.logger.Info("evicted idle sessions", map[string]interface{}{
			"count": evicted,
		})
	}
	return evicted
}

// RunSweeper periodically evicts idle sessions until stop is closed.
func (s *Store) RunSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepIdle()
		case <-stop:
			return
		}
	}
}

// Len returns the number of sessions currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (sess *Session) touch(now time.Time) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = now
}

func (sess *Session) idleSince() time.Time {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.lastActive
}
