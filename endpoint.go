// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package sccp

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/m3ua"
	"github.com/sigtrand/sigtrand/params"
)

// serviceIndicatorSCCP is the M3UA Protocol Data SI value routing to SCCP (§4.3).
const serviceIndicatorSCCP = 3

// Handler is invoked for inbound UDT/XUDT data delivered to a registered SSN.
type Handler func(calling *params.PartyAddress, data []byte)

// Endpoint is the C3 SCCP connectionless delivery point: it rides a single
// M3UA ASP link, dispatches received unit data to SSN-registered handlers,
// and replies UDTS("subsystem failure") when no handler is registered.
//
// The TCAP layer above holds a reference to Endpoint to send, and registers
// itself as a handler to receive -- this breaks the SCCP/TCAP cyclic
// reference by having SCCP act as a message bus rather than holding a
// back-pointer to TCAP.
type Endpoint struct {
	link *m3ua.Link
	opc  uint32
	ni   uint8

	mu       sync.RWMutex
	handlers map[uint8]Handler

	log *logging.Logger
}

// NewEndpoint constructs an Endpoint over an already-Active M3UA link.
func NewEndpoint(link *m3ua.Link, ownPointCode uint32, networkIndicator uint8) *Endpoint {
	e := &Endpoint{
		link:     link,
		opc:      ownPointCode,
		ni:       networkIndicator,
		handlers: make(map[uint8]Handler),
		log:      logging.Get().Component("sccp"),
	}
	e.handlers[ssnManagement] = e.handleManagement
	return e
}

// RegisterHandler binds a Handler to a called-party SSN.
func (e *Endpoint) RegisterHandler(ssn uint8, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[ssn] = h
}

// SendUnitData encodes and sends a UDT to dpc via the underlying M3UA link.
func (e *Endpoint) SendUnitData(dpc uint32, called, calling *params.PartyAddress, data []byte) error {
	udt := NewUDT(1, true, called, calling, data)
	b, err := udt.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "sccp: failed to encode UDT")
	}
	return e.link.SendData(e.opc, dpc, serviceIndicatorSCCP, e.ni, 0, 0, b)
}

// Run drains the M3UA link's Data channel, dispatching SCCP messages to
// registered handlers until the channel is closed.
func (e *Endpoint) Run() {
	for pd := range e.link.Data() {
		if pd.SI != serviceIndicatorSCCP {
			continue
		}

		msg, err := ParseMessage(pd.UserData)
		if err != nil {
			e.log.Warn("failed to parse sccp message", "error", err.Error())
			continue
		}

		switch m := msg.(type) {
		case *UDT:
			e.deliver(pd.OPC, m.CalledPartyAddress, m.CallingPartyAddress, m.Data)
		case *XUDT:
			e.deliver(pd.OPC, m.CalledPartyAddress, m.CallingPartyAddress, m.Data)
		default:
			e.log.Debug("ignoring connection-oriented sccp message", "type", msg.MessageTypeName())
		}
	}
}

func (e *Endpoint) deliver(dpc uint32, called, calling *params.PartyAddress, data []byte) {
	e.mu.RLock()
	h, ok := e.handlers[called.SubsystemNumber]
	e.mu.RUnlock()

	if !ok {
		e.log.Warn("udt delivery to unregistered ssn, returning UDTS", "ssn", int(called.SubsystemNumber))
		udts := NewUDT(1, true, calling, called, nil)
		udts.Type = MsgTypeUDTS
		// UDTS carries its return cause in the octet UDT uses for the
		// protocol class; 0x03 is "subsystem failure" (Q.713 3.12).
		udts.ProtocolClass = params.ProtocolClass(0x03)
		b, err := udts.MarshalBinary()
		if err == nil {
			_ = e.link.SendData(e.opc, dpc, serviceIndicatorSCCP, e.ni, 0, 0, b)
		}
		return
	}
	h(calling, data)
}
