// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package params

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Indicator bit layout (Q.713 3.4.1), LSB first:
//
//	bit 0      PC indicator (1 = point code present)
//	bit 1      SSN indicator (1 = subsystem number present)
//	bits 2..5  Global Title Indicator
//	bit 6      routing indicator (0 = route on GT, 1 = route on SSN)
const (
	indPCPresent  = 0x01
	indSSNPresent = 0x02
	indGTIShift   = 2
	indGTIMask    = 0x0F
	indRouteOnSSN = 0x40
)

// PartyAddress is a SCCP parameter that represents a Called/Calling Party Address.
//
// SignalingPointCode is carried on the wire as a 16-bit little-endian value,
// matching the ITU 14-bit-packed-into-16-bit short form; this does not cover
// the ANSI 24-bit point code variant.
type PartyAddress struct {
	Length             uint8
	Indicator          uint8
	SignalingPointCode uint16
	SubsystemNumber    uint8
	*GlobalTitle
}

// NewPartyAddress creates a new PartyAddress including GlobalTitle. pc/ssn
// are only encoded when present (pcPresent/ssnPresent); routeOnSSN selects
// the routing indicator bit.
func NewPartyAddress(routeOnSSN, pcPresent, ssnPresent bool, pc uint16, ssn uint8, gt *GlobalTitle) *PartyAddress {
	p := &PartyAddress{
		SignalingPointCode: pc,
		SubsystemNumber:    ssn,
		GlobalTitle:        gt,
	}

	var ind uint8
	if pcPresent {
		ind |= indPCPresent
	}
	if ssnPresent {
		ind |= indSSNPresent
	}
	if gt != nil {
		ind |= uint8(gt.GTI) << indGTIShift
	}
	if routeOnSSN {
		ind |= indRouteOnSSN
	}
	p.Indicator = ind
	p.SetLength()
	return p
}

// MarshalBinary returns the byte sequence generated from a PartyAddress instance.
func (p *PartyAddress) MarshalBinary() ([]byte, error) {
	b := make([]byte, p.MarshalLen())
	if err := p.MarshalTo(b); err != nil {
		return nil, errors.Wrap(err, "failed to serialize PartyAddress")
	}
	return b, nil
}

// MarshalTo puts the byte sequence (including the leading length octet)
// into b.
func (p *PartyAddress) MarshalTo(b []byte) error {
	_, err := p.Write(b)
	return err
}

// Write serializes the PartyAddress, including its leading length octet,
// into b, and returns the number of bytes written (== MarshalLen()).
func (p *PartyAddress) Write(b []byte) (int, error) {
	if len(b) < p.MarshalLen() {
		return 0, io.ErrUnexpectedEOF
	}

	b[0] = p.Length
	b[1] = p.Indicator
	offset := 2
	if p.HasPC() {
		binary.LittleEndian.PutUint16(b[offset:offset+2], p.SignalingPointCode)
		offset += 2
	}
	if p.HasSSN() {
		b[offset] = p.SubsystemNumber
		offset++
	}
	if p.GlobalTitle != nil {
		n, err := p.GlobalTitle.Write(b[offset:])
		if err != nil {
			return 0, err
		}
		offset += n
	}

	return offset, nil
}

// ParsePartyAddress decodes given byte sequence (including its leading
// length octet) as a SCCP PartyAddress.
func ParsePartyAddress(b []byte) (*PartyAddress, error) {
	p := &PartyAddress{}
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return p, nil
}

// ParseCalledPartyAddress decodes a PartyAddress from b and reports how many
// bytes (including the length octet) it consumed.
func ParseCalledPartyAddress(b []byte) (*PartyAddress, int, error) {
	return parsePartyAddressN(b)
}

// ParseCallingPartyAddress is an alias of ParseCalledPartyAddress: the wire
// encoding of called- and calling-party addresses is identical.
func ParseCallingPartyAddress(b []byte) (*PartyAddress, int, error) {
	return parsePartyAddressN(b)
}

func parsePartyAddressN(b []byte) (*PartyAddress, int, error) {
	if len(b) < 1 {
		return nil, 0, ErrTooShortToDecode
	}
	n := int(b[0]) + 1
	if len(b) < n {
		return nil, 0, ErrTooShortToDecode
	}
	p, err := ParsePartyAddress(b[:n])
	if err != nil {
		return nil, 0, err
	}
	return p, n, nil
}

// UnmarshalBinary sets the values retrieved from byte sequence in a PartyAddress.
func (p *PartyAddress) UnmarshalBinary(b []byte) error {
	l := len(b)
	if l < 2 {
		return ErrTooShortToDecode
	}

	p.Length = b[0]
	p.Indicator = b[1]

	offset := 2
	if p.HasPC() {
		if l < offset+2 {
			return ErrTooShortToDecode
		}
		p.SignalingPointCode = binary.LittleEndian.Uint16(b[offset : offset+2])
		offset += 2
	}
	if p.HasSSN() {
		if l < offset+1 {
			return ErrTooShortToDecode
		}
		p.SubsystemNumber = b[offset]
		offset++
	}

	if p.GTI() != GTINoGT {
		gt := &GlobalTitle{GTI: p.GTI()}
		if _, err := gt.Read(b[offset:l]); err != nil {
			return errors.Wrap(err, "failed to decode GlobalTitle")
		}
		p.GlobalTitle = gt
	}

	return nil
}

// MarshalLen returns the serial length, including the leading length octet.
func (p *PartyAddress) MarshalLen() int {
	l := 2 // length octet + indicator
	if p.HasPC() {
		l += 2
	}
	if p.HasSSN() {
		l++
	}
	if p.GlobalTitle != nil {
		l += p.GlobalTitle.MarshalLen()
	}
	return l
}

// SetLength sets the Length field from the current contents.
func (p *PartyAddress) SetLength() {
	p.Length = uint8(p.MarshalLen() - 1)
}

// RouteOnGT reports whether the packet is routed on Global Title or not.
func (p *PartyAddress) RouteOnGT() bool {
	return p.Indicator&indRouteOnSSN == 0
}

// GTI returns the GlobalTitleIndicator value retrieved from Indicator.
func (p *PartyAddress) GTI() GlobalTitleIndicator {
	return GlobalTitleIndicator((p.Indicator >> indGTIShift) & indGTIMask)
}

// HasSSN reports whether PartyAddress has a Subsystem Number.
func (p *PartyAddress) HasSSN() bool {
	return p.Indicator&indSSNPresent != 0
}

// HasPC reports whether PartyAddress has a Signaling Point Code.
func (p *PartyAddress) HasPC() bool {
	return p.Indicator&indPCPresent != 0
}

// GTString returns the GlobalTitle digits in human readable string, or ""
// when no Global Title is present.
func (p *PartyAddress) GTString() string {
	if p.GlobalTitle == nil {
		return ""
	}
	return p.GlobalTitle.Address()
}

// Address is an alias of GTString kept for parity with XUDT's CdGT/CgGT,
// which read GlobalTitle digits off of either message type uniformly.
func (p *PartyAddress) Address() string {
	return p.GTString()
}

// String returns the PartyAddress values in human readable format.
func (p *PartyAddress) String() string {
	if p.GlobalTitle != nil {
		return fmt.Sprintf("{Indicator: %#02x, SSN: %d, PC: %d, GT: %v}", p.Indicator, p.SubsystemNumber, p.SignalingPointCode, p.GlobalTitle)
	}
	return fmt.Sprintf("{Indicator: %#02x, SSN: %d, PC: %d}", p.Indicator, p.SubsystemNumber, p.SignalingPointCode)
}
