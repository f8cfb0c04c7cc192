// Copyright 2019 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

/*
Package sccp provides encoding/decoding feature of Signalling Connection Control Part used in SS7/SIGTRAN protocol stack.

This is still an experimental project, and currently in its very early stage of development. Any part of implementations
(including exported APIs) may be changed before released as v1.0.0.
*/
package sccp

import (
	"encoding"
	"fmt"

	"github.com/pkg/errors"
)

// MsgType is type of SCCP message.
type MsgType uint8

// Message Type definitions.
const (
	_ MsgType = iota
	MsgTypeCR
	MsgTypeCC
	MsgTypeCREF
	MsgTypeRLSD
	MsgTypeRLC
	MsgTypeDT1
	MsgTypeDT2
	MsgTypeAK
	MsgTypeUDT
	MsgTypeUDTS
	MsgTypeED
	MsgTypeEA
	MsgTypeRSR
	MsgTypeRSC
	MsgTypeERR
	MsgTypeIT
	MsgTypeXUDT
	MsgTypeXUDTS
	MsgTypeLUDT
	MsgTypeLUDTS
)

// String returns the MsgType in human readable format.
func (t MsgType) String() string {
	switch t {
	case MsgTypeCR:
		return "CR"
	case MsgTypeCC:
		return "CC"
	case MsgTypeCREF:
		return "CREF"
	case MsgTypeRLSD:
		return "RLSD"
	case MsgTypeRLC:
		return "RLC"
	case MsgTypeDT1:
		return "DT1"
	case MsgTypeDT2:
		return "DT2"
	case MsgTypeAK:
		return "AK"
	case MsgTypeUDT:
		return "UDT"
	case MsgTypeUDTS:
		return "UDTS"
	case MsgTypeED:
		return "ED"
	case MsgTypeEA:
		return "EA"
	case MsgTypeRSR:
		return "RSR"
	case MsgTypeRSC:
		return "RSC"
	case MsgTypeERR:
		return "ERR"
	case MsgTypeIT:
		return "IT"
	case MsgTypeXUDT:
		return "XUDT"
	case MsgTypeXUDTS:
		return "XUDTS"
	case MsgTypeLUDT:
		return "LUDT"
	case MsgTypeLUDTS:
		return "LUDTS"
	default:
		return "Unknown"
	}
}

// Message is an interface that defines SCCP messages.
type Message interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	MarshalTo([]byte) error
	MarshalLen() int
	MessageType() MsgType
	MessageTypeName() string
	fmt.Stringer
}

// FormatMessage returns the byte sequence generated from Message by Message Type.
func FormatMessage(m Message) ([]byte, error) {
	b := make([]byte, m.MarshalLen())
	if err := m.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ParseMessage decodes the byte sequence into Message by Message Type.
func ParseMessage(b []byte) (Message, error) {
	if len(b) < 1 {
		return nil, ErrTooShortToDecode
	}

	var m Message
	switch MsgType(b[0]) {
	case MsgTypeCR:
		m = &CR{}
	case MsgTypeCC:
		m = &CC{}
	case MsgTypeRLC:
		m = &RLC{}
	case MsgTypeDT1:
		m = &DT1{}
	case MsgTypeUDT:
		m = &UDT{}
	case MsgTypeXUDT:
		m = &XUDT{}
	/* not carried by this implementation; see DESIGN.md */
	case MsgTypeCREF, MsgTypeRLSD, MsgTypeDT2, MsgTypeAK, MsgTypeUDTS,
		MsgTypeED, MsgTypeEA, MsgTypeRSR, MsgTypeRSC, MsgTypeERR, MsgTypeIT,
		MsgTypeXUDTS, MsgTypeLUDT, MsgTypeLUDTS:
		return nil, &ErrUnsupportedType{Type: fmt.Sprintf("0x%02x", b[0]), Msg: "message type not implemented"}
	default:
		return nil, &ErrUnsupportedType{Type: fmt.Sprintf("0x%02x", b[0]), Msg: "unknown message type"}
	}

	if err := m.UnmarshalBinary(b); err != nil {
		return nil, errors.Wrap(err, "failed to decode SCCP")
	}
	return m, nil
}
