// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package routing_test

import (
	"testing"

	"github.com/sigtrand/sigtrand/routing"
	"github.com/sigtrand/sigtrand/smpp"
)

func TestQueueBackpressure(t *testing.T) {
	q := routing.NewQueue(1)
	if err := q.Enqueue(routing.Message{ID: "a"}); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := q.Enqueue(routing.Message{ID: "b"}); err != routing.ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	done := make(chan struct{})
	defer close(done)
	msg, ok := q.Dequeue(done)
	if !ok || msg.ID != "a" {
		t.Fatalf("got %+v ok=%v", msg, ok)
	}
}

func TestDispatcherImplementsSMPPRouter(t *testing.T) {
	table := routing.NewTable(routing.DefaultSeed())
	queue := routing.NewQueue(10)
	dispatcher := routing.NewDispatcher(table, queue, routing.DefaultCriteria())

	var _ smpp.Router = dispatcher

	if err := dispatcher.Enqueue(smpp.RoutedMessage{ID: "msg-1", SourceAddr: "123", DestAddr: "08031234567", Body: []byte("HELLO")}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	done := make(chan struct{})
	defer close(done)
	msg, ok := queue.Dequeue(done)
	if !ok {
		t.Fatal("expected a queued message")
	}
	if msg.Destination != "08031234567" || msg.Operator != routing.OperatorMTN || msg.Route == nil {
		t.Fatalf("got %+v", msg)
	}
}

func TestDispatcherNoRouteForUnclassifiedOperator(t *testing.T) {
	table := routing.NewTable(routing.DefaultSeed())
	queue := routing.NewQueue(10)
	dispatcher := routing.NewDispatcher(table, queue, routing.DefaultCriteria())

	if err := dispatcher.Enqueue(smpp.RoutedMessage{ID: "msg-2", SourceAddr: "123", DestAddr: "09991234567", Body: []byte("HI")}); err == nil {
		t.Fatal("expected an error for an unclassifiable destination")
	}
}
