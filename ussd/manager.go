// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package ussd

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/internal/metrics"
	"github.com/sigtrand/sigtrand/routing"
)

const shardCount = 32

// shard is one lock-striped bucket of the session store, the Go idiom for a
// DashMap-style concurrent map (no generics-based concurrent map exists in
// the teacher's or pack's dependency set) — per-shard locking lets
// concurrent sessions on different MSISDNs proceed without contending on a
// single global mutex.
type shard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// Manager is the C8 USSD session manager: sharded in-memory store with TTL
// expiry, menu-graph navigation, and a back-navigation stack.
type Manager struct {
	shards [shardCount]*shard
	graph  *Graph
	ttl    time.Duration
	log    *logging.Logger
}

// NewManager builds a Manager navigating graph, expiring sessions after ttl
// of inactivity.
func NewManager(graph *Graph, ttl time.Duration) *Manager {
	m := &Manager{graph: graph, ttl: ttl, log: logging.Get().Component("ussd")}
	for i := range m.shards {
		m.shards[i] = &shard{sessions: make(map[string]*Session)}
	}
	return m
}

func (m *Manager) shardFor(sessionID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return m.shards[h.Sum32()%shardCount]
}

// Create allocates a new session on the welcome menu, per §4.8's
// `create(msisdn, service_code, operator) -> session`.
func (m *Manager) Create(msisdn, serviceCode string, op routing.Operator) *Session {
	id := xid.New().String()
	now := time.Now()
	s := newSession(id, msisdn, serviceCode, op, now, m.ttl)

	sh := m.shardFor(id)
	sh.mu.Lock()
	sh.sessions[id] = s
	sh.mu.Unlock()

	metrics.USSDSessionsActive.Inc()
	metrics.USSDSessionsTotal.WithLabelValues("created").Inc()
	m.log.Debug("session created", "session_id", id, "msisdn", msisdn)
	return s
}

// GetOrCreate touches an existing session (resetting its expiry) or creates
// one if sessionID is unknown, per §4.8's `get_or_create`.
func (m *Manager) GetOrCreate(sessionID, msisdn, serviceCode string, op routing.Operator) *Session {
	if s, ok := m.get(sessionID); ok {
		s.touch(time.Now(), m.ttl)
		return s
	}
	return m.Create(msisdn, serviceCode, op)
}

// get looks up a session, evicting it as TimedOut if its TTL has already
// lapsed rather than returning a stale record to the caller -- per §4.8's
// "any lookup past expiry yields TimedOut and the record is evicted", the
// periodic CleanupExpired sweep is a backstop, not the only eviction path.
func (m *Manager) get(sessionID string) (*Session, bool) {
	sh := m.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	s, ok := sh.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if expireIfNeeded(sh, sessionID, s, time.Now()) {
		return nil, false
	}
	return s, true
}

// expireIfNeeded evicts s if its TTL has lapsed, mirroring CleanupExpired's
// branch. Callers must hold sh.mu for writing.
func expireIfNeeded(sh *shard, id string, s *Session, now time.Time) bool {
	if !s.ExpiresAt.Before(now) {
		return false
	}
	s.State = StateTimedOut
	delete(sh.sessions, id)
	metrics.USSDSessionsActive.Dec()
	metrics.USSDSessionsTotal.WithLabelValues("timed_out").Inc()
	return true
}

// Response is the result of processing one USSD input.
type Response struct {
	Message    string
	EndSession bool
	Action     Action
}

// ProcessInput advances the session's menu per the bound graph, per §4.8's
// `process_input(session, input) -> response{message, end_session}`.
func (m *Manager) ProcessInput(sessionID, input string) (*Response, bool) {
	sh := m.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	s, ok := sh.sessions[sessionID]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if expireIfNeeded(sh, sessionID, s, now) {
		return nil, false
	}
	s.touch(now, m.ttl)

	if input == "0" {
		s.pop()
		node, ok := m.graph.Node(s.CurrentMenu)
		if !ok {
			return &Response{Message: "Service unavailable.", EndSession: true}, true
		}
		s.State = StateWaitingInput
		return &Response{Message: node.Message}, true
	}

	node, ok := m.graph.Node(s.CurrentMenu)
	if !ok {
		s.State = StateCompleted
		return &Response{Message: "Service unavailable.", EndSession: true}, true
	}

	transition, ok := node.Inputs[input]
	if !ok {
		return &Response{Message: "Invalid option. " + node.Message}, true
	}

	if transition.Action != ActionNone {
		s.State = StateCompleted
		metrics.USSDSessionsTotal.WithLabelValues("completed").Inc()
		return &Response{Message: node.Message, EndSession: true, Action: transition.Action}, true
	}

	next, ok := m.graph.Node(transition.NextMenuID)
	if !ok {
		s.State = StateCompleted
		return &Response{Message: "Service unavailable.", EndSession: true}, true
	}
	s.push(next.ID)
	s.State = StateWaitingInput
	return &Response{Message: next.Message}, true
}

// CleanupExpired evicts sessions whose ExpiresAt has passed, marking them
// TimedOut, per §4.8's "periodic cleanup evicts sessions with expires < now
// and emits a TimedOut status".
func (m *Manager) CleanupExpired() int {
	now := time.Now()
	evicted := 0
	for _, sh := range m.shards {
		sh.mu.Lock()
		for id, s := range sh.sessions {
			if expireIfNeeded(sh, id, s, now) {
				evicted++
			}
		}
		sh.mu.Unlock()
	}
	if evicted > 0 {
		m.log.Info("cleanup evicted expired sessions", "count", evicted)
	}
	return evicted
}

// RunCleanup runs CleanupExpired every interval until done is closed,
// mirroring the reference's periodic cleanup_loop as a single background
// goroutine per §5's "one per background dispatcher (... session cleanup
// ...)".
func (m *Manager) RunCleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.CleanupExpired()
		case <-done:
			return
		}
	}
}
