// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package ussd implements the C8 USSD session manager: an in-memory,
// sharded session store with TTL-based expiry and menu-graph navigation.
package ussd

import (
	"time"

	"github.com/sigtrand/sigtrand/routing"
)

// State is a session's lifecycle state.
type State uint8

const (
	StateActive State = iota
	StateWaitingInput
	StateCompleted
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StateWaitingInput:
		return "WaitingInput"
	case StateCompleted:
		return "Completed"
	case StateTimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// welcomeMenu is the menu-id a session lands on when its back-stack empties,
// per §4.8's "empty stack yields the welcome menu".
const welcomeMenu = "main"

// Session is one USSD dialogue's server-side state.
type Session struct {
	ID          string
	MSISDN      string
	ServiceCode string
	Operator    routing.Operator

	CurrentMenu string
	MenuStack   []string
	Data        map[string]string

	CreatedAt    time.Time
	LastActivity time.Time
	ExpiresAt    time.Time
	State        State
}

func newSession(id, msisdn, serviceCode string, op routing.Operator, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:           id,
		MSISDN:       msisdn,
		ServiceCode:  serviceCode,
		Operator:     op,
		CurrentMenu:  welcomeMenu,
		MenuStack:    []string{welcomeMenu},
		Data:         make(map[string]string),
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(ttl),
		State:        StateActive,
	}
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.LastActivity = now
	s.ExpiresAt = now.Add(ttl)
}

// push navigates forward to menuID.
func (s *Session) push(menuID string) {
	s.MenuStack = append(s.MenuStack, menuID)
	s.CurrentMenu = menuID
}

// pop navigates back one level, per §4.8's "input '0' pops; empty stack
// yields the welcome menu" — popping the last remaining entry lands back on
// the welcome menu rather than leaving the stack empty.
func (s *Session) pop() {
	if len(s.MenuStack) > 1 {
		s.MenuStack = s.MenuStack[:len(s.MenuStack)-1]
	}
	s.CurrentMenu = s.MenuStack[len(s.MenuStack)-1]
}
