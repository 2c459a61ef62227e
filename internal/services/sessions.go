package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

// Session is one dashboard session: its filter state, the latest gated
// result, and the request tag used for last-write-wins apply semantics.
type Session struct {
	ID      uuid.UUID
	Filters *FilterService

	mu           sync.Mutex
	lastRequest  uuid.UUID
	lastResult   GraphResult
	lastSnapshot *graphmodel.Snapshot
	lastSeen     time.Time
}

// beginRequest tags a new apply and supersedes any in-flight one.
func (s *Session) beginRequest() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.lastRequest = id
	s.lastSeen = time.Now()
	s.mu.Unlock()
	return id
}

// commit stores a result if its request tag is still the latest. A false
// return means a newer apply superseded this one and its result is dropped.
func (s *Session) commit(reqID uuid.UUID, res GraphResult, snap *graphmodel.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRequest != reqID {
		return false
	}
	s.lastResult = res
	if snap != nil {
		s.lastSnapshot = snap
	}
	return true
}

// LatestResult returns the session's current gated result.
func (s *Session) LatestResult() GraphResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// LatestSnapshot returns the last normalized snapshot, or nil when no
// graph_ready query has run yet.
func (s *Session) LatestSnapshot() *graphmodel.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSnapshot
}

func (s *Session) setSnapshot(snap *graphmodel.Snapshot) {
	s.mu.Lock()
	s.lastSnapshot = snap
	s.mu.Unlock()
}

// SessionManager hands out per-session state keyed by the X-Session-ID
// header. Sessions idle past the TTL are dropped on the next sweep.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	defaults graphmodel.FilterCriteria
	ttl      time.Duration
	log      *logger.Logger
}

func NewSessionManager(log *logger.Logger, defaults graphmodel.FilterCriteria, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionManager{
		sessions: map[uuid.UUID]*Session{},
		defaults: defaults.Clone(),
		ttl:      ttl,
		log:      log.With("service", "SessionManager"),
	}
}

// GetOrCreate returns the session for id, creating one (with default filter
// state and a filters_only gate) on first sight.
func (m *SessionManager) GetOrCreate(id uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		sess.mu.Lock()
		sess.lastSeen = time.Now()
		sess.mu.Unlock()
		return sess
	}
	sess := &Session{
		ID:      id,
		Filters: NewFilterService(m.log, m.defaults),
	}
	sess.lastResult = GraphResult{Gate: InitialGateState()}
	sess.lastSeen = time.Now()
	m.sessions[id] = sess
	m.log.Debug("session created", "session_id", id.String())
	return sess
}

// Sweep drops sessions idle past the TTL. Called periodically from app start.
func (m *SessionManager) Sweep() int {
	cutoff := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, sess := range m.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.Debug("sessions swept", "removed", removed)
	}
	return removed
}
