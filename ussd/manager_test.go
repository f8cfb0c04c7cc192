// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package ussd_test

import (
	"testing"
	"time"

	"github.com/sigtrand/sigtrand/routing"
	"github.com/sigtrand/sigtrand/ussd"
)

func testGraph() *ussd.Graph {
	return ussd.NewGraph(
		ussd.Node{
			ID:      "main",
			Message: "Welcome. 1) Balance 2) Transfer",
			Inputs: map[string]ussd.Transition{
				"1": {NextMenuID: "balance"},
				"2": {NextMenuID: "transfer"},
			},
		},
		ussd.Node{
			ID:      "balance",
			Message: "Your balance is 500.",
			Inputs: map[string]ussd.Transition{
				"1": {Action: ussd.ActionEndSession},
			},
		},
		ussd.Node{
			ID:      "transfer",
			Message: "Enter amount to transfer.",
			Inputs: map[string]ussd.Transition{
				"1": {Action: ussd.ActionSendSMS},
			},
		},
	)
}

func TestCreateAndProcessInput(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Minute)
	s := m.Create("2348031234567", "*123#", routing.OperatorMTN)

	if s.CurrentMenu != "main" {
		t.Fatalf("initial menu = %q want main", s.CurrentMenu)
	}

	resp, ok := m.ProcessInput(s.ID, "1")
	if !ok {
		t.Fatal("expected session to exist")
	}
	if resp.Message != "Your balance is 500." || resp.EndSession {
		t.Fatalf("got %+v", resp)
	}
}

func TestProcessInputEndSession(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Minute)
	s := m.Create("2348031234567", "*123#", routing.OperatorMTN)

	if _, ok := m.ProcessInput(s.ID, "1"); !ok {
		t.Fatal("navigate to balance")
	}
	resp, ok := m.ProcessInput(s.ID, "1")
	if !ok {
		t.Fatal("expected session to exist")
	}
	if !resp.EndSession {
		t.Fatalf("expected end_session, got %+v", resp)
	}
}

func TestProcessInputBackNavigation(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Minute)
	s := m.Create("2348031234567", "*123#", routing.OperatorMTN)

	if _, ok := m.ProcessInput(s.ID, "2"); !ok {
		t.Fatal("navigate to transfer")
	}

	resp, ok := m.ProcessInput(s.ID, "0")
	if !ok {
		t.Fatal("expected session to exist")
	}
	if resp.Message != "Welcome. 1) Balance 2) Transfer" {
		t.Fatalf("expected back-navigation to main, got %+v", resp)
	}

	// popping with only the welcome menu left on the stack stays there.
	resp, ok = m.ProcessInput(s.ID, "0")
	if !ok || resp.Message != "Welcome. 1) Balance 2) Transfer" {
		t.Fatalf("got %+v ok=%v", resp, ok)
	}
}

func TestGetOrCreateTouchesExisting(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Minute)
	s := m.Create("2348031234567", "*123#", routing.OperatorMTN)

	got := m.GetOrCreate(s.ID, "2348031234567", "*123#", routing.OperatorMTN)
	if got.ID != s.ID {
		t.Fatalf("expected GetOrCreate to return the existing session, got different ID %q", got.ID)
	}

	got2 := m.GetOrCreate("unknown-session-id", "2348099999999", "*123#", routing.OperatorUnknown)
	if got2.ID == s.ID {
		t.Fatal("expected a new session for an unknown session id")
	}
}

func TestProcessInputEvictsExpiredSession(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Millisecond)
	s := m.Create("2348031234567", "*123#", routing.OperatorMTN)

	time.Sleep(5 * time.Millisecond)

	if _, ok := m.ProcessInput(s.ID, "1"); ok {
		t.Fatal("expected lookup past expiry to fail, not silently process the input")
	}
	if n := m.CleanupExpired(); n != 0 {
		t.Fatalf("expected ProcessInput to have already evicted the session, CleanupExpired found %d more", n)
	}
}

func TestGetOrCreateEvictsExpiredSession(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Millisecond)
	s := m.Create("2348031234567", "*123#", routing.OperatorMTN)

	time.Sleep(5 * time.Millisecond)

	got := m.GetOrCreate(s.ID, "2348031234567", "*123#", routing.OperatorMTN)
	if got.ID == s.ID {
		t.Fatal("expected GetOrCreate to mint a fresh session once the old one expired, got the same ID back")
	}
}

func TestCleanupExpired(t *testing.T) {
	m := ussd.NewManager(testGraph(), time.Millisecond)
	m.Create("2348031234567", "*123#", routing.OperatorMTN)

	time.Sleep(5 * time.Millisecond)
	n := m.CleanupExpired()
	if n != 1 {
		t.Fatalf("cleanup evicted %d want 1", n)
	}
}
