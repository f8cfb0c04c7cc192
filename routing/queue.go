// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package routing

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"

	"github.com/sigtrand/sigtrand/internal/metrics"
	"github.com/sigtrand/sigtrand/smpp"
)

// ErrQueueFull is returned by Enqueue when the bounded queue has no capacity
// left; callers (e.g. smpp.Server) are expected to surface this as a
// throttling response to their own caller, per §4.7's back-pressure note.
var ErrQueueFull = errors.New("routing: queue full")

// Message is a routed message awaiting dispatch (§3.1's "Routed Message").
type Message struct {
	ID          string
	Source      string
	Destination string
	Priority    int
	Operator    Operator
	Route       *Route
	EnqueuedAt  time.Time
	ScheduledAt *time.Time
	ValidUntil  *time.Time
	Body        []byte
	Metadata    map[string]string
}

// Queue is a bounded FIFO of routed messages; one dispatcher goroutine per
// outbound connection is expected to drain it via Dequeue, per §4.7/§5.
type Queue struct {
	ch chan Message
}

// NewQueue builds a Queue with the given capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan Message, capacity)}
}

// Enqueue attempts a non-blocking send; returns ErrQueueFull if the queue has
// no free slot.
func (q *Queue) Enqueue(msg Message) error {
	select {
	case q.ch <- msg:
		metrics.RouteQueueDepth.Set(float64(len(q.ch)))
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks until a message is available or done is closed.
func (q *Queue) Dequeue(done <-chan struct{}) (Message, bool) {
	select {
	case msg := <-q.ch:
		metrics.RouteQueueDepth.Set(float64(len(q.ch)))
		return msg, true
	case <-done:
		return Message{}, false
	}
}

// Len reports the queue's current depth.
func (q *Queue) Len() int { return len(q.ch) }

// Dispatcher composes route selection with the bounded queue, implementing
// smpp.Router so the composition root can wire it in directly wherever the
// SMPP server expects one (see smpp.Server's Router interface for why the
// dependency runs this direction and not the reverse).
type Dispatcher struct {
	table    *Table
	queue    *Queue
	criteria Criteria
}

// NewDispatcher builds a Dispatcher over table and queue using criteria for
// every SelectRoute call (a fixed policy; per-message criteria overrides are
// out of SPEC_FULL.md's scope).
func NewDispatcher(table *Table, queue *Queue, criteria Criteria) *Dispatcher {
	return &Dispatcher{table: table, queue: queue, criteria: criteria}
}

// Enqueue implements smpp.Router: classify the destination, select a route,
// and enqueue. Since smpp never imports routing (see smpp.Server's Router
// interface), the dependency runs the other way — the composition root
// wires a *Dispatcher in directly wherever an smpp.Router is expected.
func (d *Dispatcher) Enqueue(msg smpp.RoutedMessage) error {
	return d.enqueue(msg.ID, msg.SourceAddr, msg.DestAddr, msg.Body)
}

func (d *Dispatcher) enqueue(id, source, destination string, body []byte) error {
	op := ClassifyOperator(destination)
	route, ok := SelectRoute(d.table, destination, d.criteria)
	if !ok {
		return errors.Errorf("routing: no eligible route for operator %s", op)
	}

	if id == "" {
		id = xid.New().String()
	}
	return d.queue.Enqueue(Message{
		ID:          id,
		Source:      source,
		Destination: destination,
		Operator:    op,
		Route:       route,
		EnqueuedAt:  time.Now(),
		Body:        body,
	})
}
