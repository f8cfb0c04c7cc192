// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package m3ua implements the M3UA ASP state machine and PDU codec (C2):
// RFC 4666 framing over the C1 transport association, carrying MTP3 user
// data (SCCP) between Application Server Processes. The parameter TLV
// shape mirrors the wmnsk-go-sccp params package's tag/length/value/pad
// convention; this module does not vendor go-m3ua's PDU types, and Link
// below is built with NewLink over an existing transport association.
package m3ua

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// MsgClass is the M3UA message class (byte 3 of the common header).
type MsgClass uint8

const (
	ClassMGMT  MsgClass = 0
	ClassTransfer MsgClass = 1
	ClassSSNM  MsgClass = 2
	ClassASPSM MsgClass = 3
	ClassASPTM MsgClass = 4
)

// MsgType is the M3UA message type (byte 4), meaning depends on MsgClass.
type MsgType uint8

const (
	// MGMT
	TypeError  MsgType = 0x00
	TypeNotify MsgType = 0x01
	// Transfer
	TypeData MsgType = 0x01
	// SSNM
	TypeDUNA MsgType = 0x01
	TypeDAVA MsgType = 0x02
	TypeDAUD MsgType = 0x03
	// ASPSM
	TypeASPUp       MsgType = 0x01
	TypeASPDown     MsgType = 0x02
	TypeHeartbeat   MsgType = 0x03
	TypeASPUpAck    MsgType = 0x04
	TypeASPDownAck  MsgType = 0x05
	TypeHeartbeatAck MsgType = 0x06
	// ASPTM
	TypeASPActive       MsgType = 0x01
	TypeASPInactive     MsgType = 0x02
	TypeASPActiveAck    MsgType = 0x03
	TypeASPInactiveAck  MsgType = 0x04
)

// Parameter tags per RFC 4666 (§6 of the wire spec).
const (
	TagInfoString       uint16 = 0x0004
	TagRoutingContext   uint16 = 0x0006
	TagDiagnosticInfo   uint16 = 0x0007
	TagHeartbeatData    uint16 = 0x0009
	TagTrafficModeType  uint16 = 0x000B
	TagErrorCode        uint16 = 0x000C
	TagStatus           uint16 = 0x000D
	TagAspIdentifier    uint16 = 0x0011
	TagAffectedPC       uint16 = 0x0012
	TagCorrelationID    uint16 = 0x0013
	TagNetworkAppearance uint16 = 0x021B
	TagProtocolData     uint16 = 0x0210
)

const headerLen = 8

// ErrTooShort indicates a PDU or TLV could not be decoded from the given bytes.
var ErrTooShort = errors.New("m3ua: too short to decode")

// Param is one parsed TLV parameter (tag, raw value, right-padded to a
// 4-byte boundary on the wire but stored here without the padding).
type Param struct {
	Tag   uint16
	Value []byte
}

// MarshalLen returns the padded on-wire length of this parameter.
func (p *Param) MarshalLen() int {
	l := 4 + len(p.Value)
	return l + pad4(l)
}

// MarshalTo writes the tag/length/value/pad form into b.
func (p *Param) MarshalTo(b []byte) error {
	if len(b) < p.MarshalLen() {
		return ErrTooShort
	}
	binary.BigEndian.PutUint16(b[0:2], p.Tag)
	binary.BigEndian.PutUint16(b[2:4], uint16(4+len(p.Value)))
	copy(b[4:], p.Value)
	return nil
}

func pad4(l int) int {
	if r := l % 4; r != 0 {
		return 4 - r
	}
	return 0
}

// ParseParams decodes a run of TLV parameters filling the rest of a PDU.
func ParseParams(b []byte) ([]*Param, error) {
	var params []*Param
	for len(b) > 0 {
		if len(b) < 4 {
			return nil, ErrTooShort
		}
		tag := binary.BigEndian.Uint16(b[0:2])
		length := binary.BigEndian.Uint16(b[2:4])
		if int(length) < 4 || len(b) < int(length) {
			return nil, ErrTooShort
		}
		value := make([]byte, length-4)
		copy(value, b[4:length])
		params = append(params, &Param{Tag: tag, Value: value})

		total := int(length) + pad4(int(length))
		if len(b) < total {
			total = len(b)
		}
		b = b[total:]
	}
	return params, nil
}

// PDU is a decoded M3UA message: common header plus parameters.
type PDU struct {
	Version uint8
	Class   MsgClass
	Type    MsgType
	Params  []*Param
}

// NewPDU builds a PDU with version 1 and the given class/type/params.
func NewPDU(class MsgClass, typ MsgType, params ...*Param) *PDU {
	return &PDU{Version: 1, Class: class, Type: typ, Params: params}
}

// Param returns the first parameter matching tag, or nil.
func (p *PDU) Param(tag uint16) *Param {
	for _, prm := range p.Params {
		if prm.Tag == tag {
			return prm
		}
	}
	return nil
}

// MarshalLen returns the total on-wire PDU length including the header.
func (p *PDU) MarshalLen() int {
	l := headerLen
	for _, prm := range p.Params {
		l += prm.MarshalLen()
	}
	return l
}

// MarshalBinary serializes the PDU.
func (p *PDU) MarshalBinary() ([]byte, error) {
	b := make([]byte, p.MarshalLen())
	if err := p.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// MarshalTo serializes the PDU into b.
func (p *PDU) MarshalTo(b []byte) error {
	if len(b) < headerLen {
		return ErrTooShort
	}
	b[0] = 1
	b[1] = 0
	b[2] = byte(p.Class)
	b[3] = byte(p.Type)
	binary.BigEndian.PutUint32(b[4:8], uint32(p.MarshalLen()))

	offset := headerLen
	for _, prm := range p.Params {
		if err := prm.MarshalTo(b[offset:]); err != nil {
			return err
		}
		offset += prm.MarshalLen()
	}
	return nil
}

// ParsePDU decodes a single PDU from b.
func ParsePDU(b []byte) (*PDU, error) {
	if len(b) < headerLen {
		return nil, ErrTooShort
	}
	total := binary.BigEndian.Uint32(b[4:8])
	if int(total) > len(b) {
		return nil, ErrTooShort
	}

	params, err := ParseParams(b[headerLen:total])
	if err != nil {
		return nil, err
	}

	return &PDU{
		Version: b[0],
		Class:   MsgClass(b[2]),
		Type:    MsgType(b[3]),
		Params:  params,
	}, nil
}

// ProtocolData is the decoded value of a TagProtocolData TLV (§4.2): the
// MTP3 routing label plus the user-part (SCCP) payload it carries.
type ProtocolData struct {
	OPC, DPC uint32
	SI, NI   uint8
	MP, SLS  uint8
	UserData []byte
}

// MarshalBinary encodes the Protocol Data parameter value.
func (d *ProtocolData) MarshalBinary() []byte {
	b := make([]byte, 12+len(d.UserData))
	binary.BigEndian.PutUint32(b[0:4], d.OPC)
	binary.BigEndian.PutUint32(b[4:8], d.DPC)
	b[8] = d.SI
	b[9] = d.NI
	b[10] = d.MP
	b[11] = d.SLS
	copy(b[12:], d.UserData)
	return b
}

// ParseProtocolData decodes a Protocol Data parameter value.
func ParseProtocolData(b []byte) (*ProtocolData, error) {
	if len(b) < 12 {
		return nil, ErrTooShort
	}
	return &ProtocolData{
		OPC:      binary.BigEndian.Uint32(b[0:4]),
		DPC:      binary.BigEndian.Uint32(b[4:8]),
		SI:       b[8],
		NI:       b[9],
		MP:       b[10],
		SLS:      b[11],
		UserData: b[12:],
	}, nil
}
