// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package m3ua

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/internal/metrics"
	"github.com/sigtrand/sigtrand/sctp"
)

// AspState is the lifecycle of an Application Server Process.
type AspState uint8

const (
	Down AspState = iota
	Inactive
	Active
)

func (s AspState) String() string {
	switch s {
	case Down:
		return "Down"
	case Inactive:
		return "Inactive"
	case Active:
		return "Active"
	default:
		return "Unknown"
	}
}

// AspStateError reports a failed state transition: an unexpected ACK class,
// a wire ERROR, or operation_timeout elapsing with no ACK observed.
type AspStateError struct {
	From, To AspState
	Reason   string
}

func (e *AspStateError) Error() string {
	return "m3ua: asp state transition " + e.From.String() + " -> " + e.To.String() + " failed: " + e.Reason
}

// Link is an ASP instance riding a single transport Association.
//
// State is guarded by a single mutex shared between the writer (transition
// operations below) and the reader (recv loop), per the spec's guidance to
// model ASP state as one shared lock rather than scattered booleans.
type Link struct {
	assoc *sctp.Association

	mu    sync.Mutex
	state AspState

	routingContexts   []uint32
	networkAppearance *uint32
	networkIndicator  uint8

	operationTimeout time.Duration

	dataCh chan *ProtocolData
	pendingAck chan *PDU

	log *logging.Logger
}

// NewLink wraps an established Association as an M3UA ASP in state Down.
func NewLink(assoc *sctp.Association, networkIndicator uint8, operationTimeout time.Duration) *Link {
	return &Link{
		assoc:            assoc,
		state:            Down,
		networkIndicator: networkIndicator,
		operationTimeout: operationTimeout,
		dataCh:           make(chan *ProtocolData, 64),
		pendingAck:       make(chan *PDU, 1),
		log:              logging.Get().Component("m3ua"),
	}
}

// State returns the current ASP state.
func (l *Link) State() AspState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Link) setState(s AspState) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
	metrics.ASPState.Set(float64(s))
}

// AspUp sends ASP_UP and awaits ASP_UP_ACK within operation_timeout.
func (l *Link) AspUp() error {
	if l.State() != Down {
		return &AspStateError{From: l.State(), To: Inactive, Reason: "not in Down"}
	}

	pdu := NewPDU(ClassASPSM, TypeASPUp, &Param{Tag: TagInfoString, Value: []byte("sigtrand")})
	if err := l.sendPDU(pdu); err != nil {
		return err
	}

	ack, err := l.awaitAck(ClassASPSM, TypeASPUpAck)
	if err != nil {
		return &AspStateError{From: Down, To: Inactive, Reason: err.Error()}
	}
	_ = ack
	l.setState(Inactive)
	return nil
}

// AspActive sends ASP_ACTIVE and awaits ASP_ACTIVE_ACK.
func (l *Link) AspActive(routingContexts []uint32) error {
	if l.State() != Inactive {
		return &AspStateError{From: l.State(), To: Active, Reason: "not in Inactive"}
	}

	var params []*Param
	if len(routingContexts) > 0 {
		params = append(params, rcParam(routingContexts))
	}
	if err := l.sendPDU(NewPDU(ClassASPTM, TypeASPActive, params...)); err != nil {
		return err
	}

	if _, err := l.awaitAck(ClassASPTM, TypeASPActiveAck); err != nil {
		return &AspStateError{From: Inactive, To: Active, Reason: err.Error()}
	}
	l.routingContexts = routingContexts
	l.setState(Active)
	return nil
}

// AspInactive sends ASP_INACTIVE and awaits ASP_INACTIVE_ACK.
func (l *Link) AspInactive() error {
	if l.State() != Active {
		return &AspStateError{From: l.State(), To: Inactive, Reason: "not in Active"}
	}
	if err := l.sendPDU(NewPDU(ClassASPTM, TypeASPInactive)); err != nil {
		return err
	}
	if _, err := l.awaitAck(ClassASPTM, TypeASPInactiveAck); err != nil {
		return &AspStateError{From: Active, To: Inactive, Reason: err.Error()}
	}
	l.setState(Inactive)
	return nil
}

// AspDown sends ASP_DOWN and awaits ASP_DOWN_ACK.
func (l *Link) AspDown() error {
	if err := l.sendPDU(NewPDU(ClassASPSM, TypeASPDown)); err != nil {
		return err
	}
	if _, err := l.awaitAck(ClassASPSM, TypeASPDownAck); err != nil {
		return &AspStateError{From: l.State(), To: Down, Reason: err.Error()}
	}
	l.setState(Down)
	return nil
}

// SendData transmits user-part data. Fails with AspStateError outside Active.
func (l *Link) SendData(opc, dpc uint32, si, ni, mp, sls uint8, userData []byte) error {
	if l.State() != Active {
		return &AspStateError{From: l.State(), To: Active, Reason: "send_data requires Active"}
	}

	pd := &ProtocolData{OPC: opc, DPC: dpc, SI: si, NI: ni, MP: mp, SLS: sls, UserData: userData}
	pdu := NewPDU(ClassTransfer, TypeData, &Param{Tag: TagProtocolData, Value: pd.MarshalBinary()})
	return l.sendPDU(pdu)
}

// Recv runs the PDU receive loop: acknowledges heartbeats, surfaces DATA
// payloads on the Data channel, and logs NOTIFY without touching state.
//
// Callers should run Recv in its own goroutine for the lifetime of the Link.
func (l *Link) Recv() error {
	for {
		_, payload, err := l.assoc.Recv()
		if err != nil {
			return err
		}
		if payload == nil {
			continue // transport-level heartbeat, not an M3UA PDU
		}

		pdu, err := ParsePDU(payload)
		if err != nil {
			l.log.Warn("failed to parse m3ua pdu", "error", err.Error())
			continue
		}

		switch {
		case pdu.Class == ClassASPSM && pdu.Type == TypeHeartbeat:
			ack := NewPDU(ClassASPSM, TypeHeartbeatAck)
			if hb := pdu.Param(TagHeartbeatData); hb != nil {
				ack.Params = append(ack.Params, &Param{Tag: TagHeartbeatData, Value: hb.Value})
			}
			if err := l.sendPDU(ack); err != nil {
				return err
			}
		case pdu.Class == ClassMGMT && pdu.Type == TypeNotify:
			l.log.Info("m3ua notify received")
		case pdu.Class == ClassTransfer && pdu.Type == TypeData:
			if dp := pdu.Param(TagProtocolData); dp != nil {
				pd, err := ParseProtocolData(dp.Value)
				if err == nil {
					l.dataCh <- pd
				}
			}
		default:
			l.ackCh(pdu)
		}
	}
}

// Data returns the channel on which received user-part data arrives.
func (l *Link) Data() <-chan *ProtocolData { return l.dataCh }

// ackCh delivers a non-DATA, non-heartbeat PDU (an ACK, ERROR, or unexpected
// class/type) to whichever transition call is currently waiting, if any.
func (l *Link) ackCh(pdu *PDU) {
	select {
	case l.pendingAck <- pdu:
	default:
		l.log.Warn("dropped unsolicited m3ua pdu", "class", int(pdu.Class), "type", int(pdu.Type))
	}
}

// awaitAck blocks for the next PDU delivered via ackCh and checks it matches
// the expected class/type within operation_timeout. A mismatching class/type
// or a wire ERROR aborts the transition; leaving state unchanged is the
// caller's responsibility (it only calls setState after awaitAck succeeds).
func (l *Link) awaitAck(wantClass MsgClass, wantType MsgType) (*PDU, error) {
	select {
	case pdu := <-l.pendingAck:
		if pdu.Class == ClassMGMT && pdu.Type == TypeError {
			return nil, errors.New("peer returned m3ua ERROR")
		}
		if pdu.Class != wantClass || pdu.Type != wantType {
			return nil, errors.New("unexpected ack class/type")
		}
		return pdu, nil
	case <-time.After(l.operationTimeout):
		return nil, errors.New("operation_timeout elapsed")
	}
}

func (l *Link) sendPDU(pdu *PDU) error {
	b, err := pdu.MarshalBinary()
	if err != nil {
		return err
	}
	return l.assoc.Send(0, b, true)
}

func rcParam(rc []uint32) *Param {
	v := make([]byte, 4*len(rc))
	for i, c := range rc {
		binary.BigEndian.PutUint32(v[i*4:], c)
	}
	return &Param{Tag: TagRoutingContext, Value: v}
}
