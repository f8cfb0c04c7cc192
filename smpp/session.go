// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package smpp

import (
	"fmt"
	"sync"
)

// State is an SMPP session's lifecycle state (§4.6).
type State uint8

const (
	Open State = iota
	BindReceiver
	BindTransmitter
	BindTransceiver
	Closed
)

func (s State) String() string {
	switch s {
	case Open:
		return "Open"
	case BindReceiver:
		return "BindReceiver"
	case BindTransmitter:
		return "BindTransmitter"
	case BindTransceiver:
		return "BindTransceiver"
	case Closed:
		return "Closed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Bound reports whether s is one of the three Bind* states, in which
// submit_sm/deliver_sm are valid.
func (s State) Bound() bool {
	return s == BindReceiver || s == BindTransmitter || s == BindTransceiver
}

// ErrInvalidState is returned when a command is attempted outside the
// session state it requires (e.g. submit_sm before a successful bind).
type ErrInvalidState struct {
	Command string
	State   State
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("smpp: %s invalid in state %s", e.Command, e.State)
}

// Session is one SMPP connection's bound identity and state, guarded by a
// single mutex per the teacher's "single shared lock, not scattered
// booleans" state-machine convention.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	systemID string

	limiter *tokenBucket
}

func newSession(id string, throughputPerSec int) *Session {
	return &Session{
		ID:      id,
		state:   Open,
		limiter: newTokenBucket(throughputPerSec),
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Bind transitions Open -> the requested Bind* state, recording system_id.
func (s *Session) Bind(target State, systemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Open {
		return &ErrInvalidState{Command: "bind", State: s.state}
	}
	s.state = target
	s.systemID = systemID
	return nil
}

// SystemID returns the bound system_id, or "" before a successful bind.
func (s *Session) SystemID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.systemID
}

// RequireBound returns ErrInvalidState unless the session is in a Bind*
// state, per §4.6's "submit_sm/deliver_sm are valid only in a Bind* state".
func (s *Session) RequireBound(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Bound() {
		return &ErrInvalidState{Command: command, State: s.state}
	}
	return nil
}

// Close transitions to Closed. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Closed
}

// Allow reports whether the per-session throughput limiter has a token
// available for one more outbound message, consuming it if so.
func (s *Session) Allow() bool {
	return s.limiter.take()
}
