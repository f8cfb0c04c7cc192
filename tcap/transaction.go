// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package tcap

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/sigtrand/sigtrand"
	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/params"
)

// TxState is a Transaction's lifecycle state.
type TxState uint8

const (
	Idle TxState = iota
	InitiationSent
	InitiationReceived
	Active
)

// ErrTransactionNotFound is returned when an operation names an OTID the
// engine does not own, including the "unknown DTID" wire case.
type ErrTransactionNotFound struct{ OTID string }

func (e *ErrTransactionNotFound) Error() string {
	return fmt.Sprintf("tcap: transaction not found: %s", e.OTID)
}

// Transaction is one local TCAP dialogue.
type Transaction struct {
	OTID []byte
	DTID []byte
	State TxState
	Peer *params.PartyAddress
}

// Event is a Message delivered to the caller's Receive stream, alongside the
// SCCP calling address it arrived from (needed to address replies).
type Event struct {
	Msg    *Message
	Origin *params.PartyAddress
}

// Engine is the C4 transaction & component engine: it owns the transaction
// table and allocates OTIDs, riding a single SCCP Endpoint for transport.
//
// The cyclic SCCP<->TCAP reference is broken per the spec's design note: the
// Endpoint is constructed first as a message bus, and Engine registers a
// callback with it rather than SCCP holding a back-pointer to Engine.
type Engine struct {
	ep       *sccp.Endpoint
	ownAddr  *params.PartyAddress
	peerPC   uint32

	mu           sync.Mutex
	transactions map[string]*Transaction
	otidCounter  uint32

	waitersMu sync.Mutex
	waiters   map[string]chan *Event

	events chan *Event

	log *logging.Logger
}

// NewEngine constructs an Engine bound to ssn on ep, addressing the peer at
// peerPointCode. ownAddr is used as the calling-party address on every Begin.
func NewEngine(ep *sccp.Endpoint, ssn uint8, ownAddr *params.PartyAddress, peerPointCode uint32) *Engine {
	e := &Engine{
		ep:           ep,
		ownAddr:      ownAddr,
		peerPC:       peerPointCode,
		transactions: make(map[string]*Transaction),
		waiters:      make(map[string]chan *Event),
		events:       make(chan *Event, 64),
		log:          logging.Get().Component("tcap"),
	}
	ep.RegisterHandler(ssn, e.onUnitData)
	return e
}

// Events returns the stream of inbound messages the caller must service:
// every Begin, plus any Continue/End/Abort whose DTID has no pending
// one-shot wait channel. A Continue/End/Abort whose DTID does have one
// (registered by Begin or AwaitDialogue) goes to that channel instead.
func (e *Engine) Events() <-chan *Event { return e.events }

func (e *Engine) onUnitData(calling *params.PartyAddress, data []byte) {
	msg, err := Parse(data)
	if err != nil {
		e.log.Warn("failed to parse tcap message", "error", err.Error())
		return
	}

	switch msg.Kind {
	case KindBegin:
		otid := append([]byte(nil), msg.OTID...)
		e.mu.Lock()
		e.transactions[key(otid)] = &Transaction{OTID: otid, DTID: otid, State: InitiationReceived, Peer: calling}
		e.mu.Unlock()
		e.events <- &Event{Msg: msg, Origin: calling}

	case KindContinue:
		dtidKey := key(msg.DTID) // our OTID is their DTID
		e.mu.Lock()
		tx, ok := e.transactions[dtidKey]
		if ok {
			tx.DTID = append([]byte(nil), msg.OTID...)
			tx.State = Active
		}
		e.mu.Unlock()
		e.deliverOrBroadcast(dtidKey, msg, calling)

	case KindEnd:
		dtidKey := key(msg.DTID)
		e.mu.Lock()
		delete(e.transactions, dtidKey)
		e.mu.Unlock()
		e.deliverOrBroadcast(dtidKey, msg, calling)

	case KindAbort:
		dtidKey := key(msg.DTID)
		e.mu.Lock()
		delete(e.transactions, dtidKey)
		e.mu.Unlock()
		e.deliverOrBroadcast(dtidKey, msg, calling)
	}
}

func (e *Engine) deliverOrBroadcast(txKey string, msg *Message, calling *params.PartyAddress) {
	e.waitersMu.Lock()
	ch, ok := e.waiters[txKey]
	if ok {
		delete(e.waiters, txKey)
	}
	e.waitersMu.Unlock()

	if ok {
		ch <- &Event{Msg: msg, Origin: calling}
		return
	}
	e.events <- &Event{Msg: msg, Origin: calling}
}

// AwaitDialogue returns the one-shot wait channel for otid. Begin registers
// this channel before the Begin PDU ever reaches the wire, so a caller that
// calls AwaitDialogue immediately after Begin returns cannot race the reply.
func (e *Engine) AwaitDialogue(otid []byte) <-chan *Event {
	e.waitersMu.Lock()
	defer e.waitersMu.Unlock()
	if ch, ok := e.waiters[key(otid)]; ok {
		return ch
	}
	ch := make(chan *Event, 1)
	e.waiters[key(otid)] = ch
	return ch
}

// Begin allocates a fresh OTID, creates the transaction in InitiationSent,
// registers its dialogue-wait channel, sends Begin via SCCP to calledAddr,
// and returns the OTID.
func (e *Engine) Begin(calledAddr *params.PartyAddress, appContext []uint32, components []*Component) ([]byte, error) {
	otid := e.nextOTID()

	e.mu.Lock()
	e.transactions[key(otid)] = &Transaction{OTID: otid, State: InitiationSent, Peer: calledAddr}
	e.mu.Unlock()

	e.waitersMu.Lock()
	e.waiters[key(otid)] = make(chan *Event, 1)
	e.waitersMu.Unlock()

	msg := &Message{Kind: KindBegin, OTID: otid, AppContext: appContext, Components: components}
	if err := e.ep.SendUnitData(e.peerPC, calledAddr, e.ownAddr, msg.MarshalBinary()); err != nil {
		return nil, errors.Wrap(err, "tcap: failed to send Begin")
	}
	return otid, nil
}

// Continue requires the transaction to have learned the peer DTID (at least
// one Continue already received); sends Continue and marks the transaction Active.
func (e *Engine) Continue(otid []byte, components []*Component) error {
	e.mu.Lock()
	tx, ok := e.transactions[key(otid)]
	e.mu.Unlock()
	if !ok {
		return &ErrTransactionNotFound{OTID: fmt.Sprintf("%x", otid)}
	}
	if len(tx.DTID) == 0 {
		return errors.New("tcap: Continue requires a learned peer DTID")
	}

	msg := &Message{Kind: KindContinue, OTID: otid, DTID: tx.DTID, Components: components}
	if err := e.ep.SendUnitData(e.peerPC, tx.Peer, e.ownAddr, msg.MarshalBinary()); err != nil {
		return err
	}

	e.mu.Lock()
	tx.State = Active
	e.mu.Unlock()
	return nil
}

// End sends End with dest_tid=peer and removes the transaction.
func (e *Engine) End(otid []byte, components []*Component) error {
	e.mu.Lock()
	tx, ok := e.transactions[key(otid)]
	if ok {
		delete(e.transactions, key(otid))
	}
	e.mu.Unlock()
	if !ok {
		return &ErrTransactionNotFound{OTID: fmt.Sprintf("%x", otid)}
	}

	msg := &Message{Kind: KindEnd, DTID: tx.DTID, Components: components}
	return e.ep.SendUnitData(e.peerPC, tx.Peer, e.ownAddr, msg.MarshalBinary())
}

// RespondEnd is the responding side of End: it is identical to End but
// named distinctly since the transaction was InitiationReceived, not
// InitiationSent, and its DTID equals the peer's OTID learned from Begin.
func (e *Engine) RespondEnd(otid []byte, components []*Component) error {
	return e.End(otid, components)
}

func (e *Engine) nextOTID() []byte {
	n := atomic.AddUint32(&e.otidCounter, 1)
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

func key(otid []byte) string { return string(otid) }
