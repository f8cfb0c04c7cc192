// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package smpp implements the SMPP v3.4 server side (C6): framed PDU
// accept, bind state, submit_sm → router, enquire_link, unbind, following
// the teacher's tag/length/value reading style generalized from SCCP's
// TLV parameters to SMPP's fixed-header-plus-C-string body shape.
package smpp

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Command IDs (§4.6).
const (
	CmdBindReceiver    uint32 = 0x00000001
	CmdBindTransmitter uint32 = 0x00000002
	CmdBindTransceiver uint32 = 0x00000009
	CmdSubmitSM        uint32 = 0x00000004
	CmdDeliverSM       uint32 = 0x00000005
	CmdEnquireLink     uint32 = 0x00000015
	CmdUnbind          uint32 = 0x00000006
	CmdGenericNack     uint32 = 0x80000000

	respMask uint32 = 0x80000000
)

const headerLen = 16

// ErrTooShort is returned when the buffer does not yet hold a complete PDU
// -- the caller should wait for more bytes, not close the connection.
var ErrTooShort = errors.New("smpp: pdu too short")

// ErrMalformed is returned when the buffer holds a syntactically invalid
// PDU that no amount of additional bytes would fix (CommandLength shorter
// than the fixed header, or implausibly large). The caller should treat
// this as fatal for the connection.
var ErrMalformed = errors.New("smpp: malformed pdu")

// maxPDULen bounds CommandLength against a single runaway allocation; no
// SMPP v3.4 PDU this server constructs or accepts legitimately approaches it.
const maxPDULen = 64 * 1024

// PDU is a decoded SMPP protocol data unit: a fixed 16-byte header plus an
// opaque, command-specific body.
type PDU struct {
	CommandLength uint32
	CommandID     uint32
	CommandStatus uint32
	SequenceNum   uint32
	Body          []byte
}

// MarshalBinary encodes the PDU, recomputing CommandLength from len(Body).
func (p *PDU) MarshalBinary() []byte {
	p.CommandLength = uint32(headerLen + len(p.Body))
	b := make([]byte, p.CommandLength)
	binary.BigEndian.PutUint32(b[0:4], p.CommandLength)
	binary.BigEndian.PutUint32(b[4:8], p.CommandID)
	binary.BigEndian.PutUint32(b[8:12], p.CommandStatus)
	binary.BigEndian.PutUint32(b[12:16], p.SequenceNum)
	copy(b[16:], p.Body)
	return b
}

// ParsePDU decodes one PDU from the front of b. It returns the PDU and the
// byte count the caller should advance by (== CommandLength).
func ParsePDU(b []byte) (*PDU, int, error) {
	if len(b) < headerLen {
		return nil, 0, ErrTooShort
	}
	length := binary.BigEndian.Uint32(b[0:4])
	if length < headerLen || length > maxPDULen {
		return nil, 0, ErrMalformed
	}
	if int(length) > len(b) {
		return nil, 0, ErrTooShort
	}
	p := &PDU{
		CommandLength: length,
		CommandID:     binary.BigEndian.Uint32(b[4:8]),
		CommandStatus: binary.BigEndian.Uint32(b[8:12]),
		SequenceNum:   binary.BigEndian.Uint32(b[12:16]),
	}
	p.Body = append([]byte(nil), b[16:length]...)
	return p, int(length), nil
}

// cString reads a NUL-terminated string starting at b[0], returning the
// string (without the NUL) and the number of bytes consumed (including it).
func cString(b []byte) (string, int, error) {
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), i + 1, nil
		}
	}
	return "", 0, errors.New("smpp: unterminated c-string")
}

func appendCString(b []byte, s string) []byte {
	return append(append(b, s...), 0)
}

// BindRequest is the decoded body of bind_receiver/transmitter/transceiver.
type BindRequest struct {
	SystemID string
}

// ParseBindRequest decodes a bind_* PDU body (only the leading system_id
// C-string is needed by this core; password/system_type/addr_ton etc. are
// accepted but not validated).
func ParseBindRequest(body []byte) (*BindRequest, error) {
	systemID, _, err := cString(body)
	if err != nil {
		return nil, errors.Wrap(err, "smpp: bind request")
	}
	return &BindRequest{SystemID: systemID}, nil
}

// BindResponse builds a bind_*_resp body: system_id\0.
func BindResponse(systemID string) []byte {
	return appendCString(nil, systemID)
}

// SubmitSM is the decoded body of submit_sm.
type SubmitSM struct {
	SourceAddr string
	DestAddr   string
	ShortMessage []byte
}

// ParseSubmitSM decodes source_addr/dest_addr (C-strings) and sm_length +
// short_message (a 1-byte length prefix followed by that many bytes), per
// §4.6's "each C-string except short-message which is length-prefixed".
func ParseSubmitSM(body []byte) (*SubmitSM, error) {
	// source_addr_ton, source_addr_npi: 1 byte each, skipped (unused by
	// this core's routing, which classifies by digit-string prefix only).
	if len(body) < 2 {
		return nil, errors.New("smpp: submit_sm too short")
	}
	rest := body[2:]
	source, n, err := cString(rest)
	if err != nil {
		return nil, errors.Wrap(err, "smpp: submit_sm source_addr")
	}
	rest = rest[n:]

	if len(rest) < 2 {
		return nil, errors.New("smpp: submit_sm too short (dest ton/npi)")
	}
	rest = rest[2:]
	dest, n, err := cString(rest)
	if err != nil {
		return nil, errors.Wrap(err, "smpp: submit_sm dest_addr")
	}
	rest = rest[n:]

	// esm_class, protocol_id, priority_flag: 1 byte each, skipped.
	if len(rest) < 3 {
		return nil, errors.New("smpp: submit_sm too short (flags)")
	}
	rest = rest[3:]
	_, n, err = cString(rest) // schedule_delivery_time
	if err != nil {
		return nil, errors.Wrap(err, "smpp: submit_sm schedule_delivery_time")
	}
	rest = rest[n:]
	_, n, err = cString(rest) // validity_period
	if err != nil {
		return nil, errors.Wrap(err, "smpp: submit_sm validity_period")
	}
	rest = rest[n:]

	// registered_delivery, replace_if_present_flag, data_coding,
	// sm_default_msg_id: 1 byte each, skipped.
	if len(rest) < 5 {
		return nil, errors.New("smpp: submit_sm too short (registered_delivery..sm_length)")
	}
	smLength := int(rest[4])
	rest = rest[5:]
	if len(rest) < smLength {
		return nil, errors.New("smpp: submit_sm short_message truncated")
	}

	return &SubmitSM{
		SourceAddr:   source,
		DestAddr:     dest,
		ShortMessage: append([]byte(nil), rest[:smLength]...),
	}, nil
}

// SubmitSMResponse builds a submit_sm_resp body: message_id\0.
func SubmitSMResponse(messageID string) []byte {
	return appendCString(nil, messageID)
}
