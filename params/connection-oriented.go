// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package params

import (
	"fmt"
	"io"

	"github.com/sigtrand/sigtrand/utils"
)

// Optional TLV tags used by the connection-oriented messages (CR/CC).
const (
	DataTag      uint8 = 0x0F
	CdPtyAddrTag uint8 = 0x03
	CgPtyAddrTag uint8 = 0x04
)

// LocalReference is the 24-bit Source/Destination Local Reference used by
// CR/CC/RLSD/RLC/DT1.
type LocalReference uint32

// ParseLocalReference decodes a 3-byte big-endian local reference.
func ParseLocalReference(b []byte) (LocalReference, error) {
	if len(b) < 3 {
		return 0, ErrTooShortToDecode
	}
	return LocalReference(utils.Uint24To32(b[:3])), nil
}

// Bytes returns the 3-byte big-endian encoding of the local reference.
func (lr LocalReference) Bytes() []byte {
	return utils.Uint32To24(uint32(lr))
}

// String returns the LocalReference value in human readable format.
func (lr LocalReference) String() string {
	return fmt.Sprintf("%06X", uint32(lr))
}

// Optional is a generic TLV optional parameter as carried by CR/CC.
type Optional struct {
	Tag   uint8
	Len   uint8
	Value []byte
}

// Parameter is implemented by the XUDT optional-parameter area's entries
// (Segmentation, Importance, EndOfOptionalParameters, HopCounter, Data).
type Parameter interface {
	Code() ParameterNameCode
	Write(b []byte) (int, error)
	MarshalLen() int
}

// HopCounter is the XUDT Hop Counter parameter (Q.713 3.18): decremented on
// each relay, reaching 0 triggers return-on-error.
type HopCounter struct {
	Value uint8
}

// NewHopCounter creates a new HopCounter.
func NewHopCounter(v uint8) *HopCounter { return &HopCounter{Value: v} }

// Code returns the parameter name code.
func (h *HopCounter) Code() ParameterNameCode { return PCodeHopCounter }

// Write serializes HopCounter into b.
func (h *HopCounter) Write(b []byte) (int, error) {
	if len(b) < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b[0] = h.Value
	return 1, nil
}

// Read decodes a HopCounter from b.
func (h *HopCounter) Read(b []byte) (int, error) {
	if len(b) < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	h.Value = b[0]
	return 1, nil
}

// MarshalLen returns the serial length.
func (h *HopCounter) MarshalLen() int { return 1 }

// Decrement decrements the hop counter, reporting whether it reached 0.
func (h *HopCounter) Decrement() (exhausted bool) {
	if h.Value > 0 {
		h.Value--
	}
	return h.Value == 0
}

// String returns the HopCounter in human readable format.
func (h *HopCounter) String() string {
	if h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d", h.Value)
}

// Data is the length-prefixed user-data variable part shared by UDT/XUDT.
type Data struct {
	Length uint8
	Value  []byte
}

// NewData creates a new Data parameter.
func NewData(v []byte) *Data { return &Data{Length: uint8(len(v)), Value: v} }

// Code returns the parameter name code.
func (d *Data) Code() ParameterNameCode { return PCodeData }

// Write serializes Data (length-prefixed) into b.
func (d *Data) Write(b []byte) (int, error) {
	if len(b) < d.MarshalLen() {
		return 0, io.ErrUnexpectedEOF
	}
	b[0] = uint8(len(d.Value))
	copy(b[1:], d.Value)
	return d.MarshalLen(), nil
}

// ParseData decodes a length-prefixed Data parameter from b, reporting how
// many bytes it consumed.
func ParseData(b []byte) (*Data, int, error) {
	if len(b) < 1 {
		return nil, 0, io.ErrUnexpectedEOF
	}
	l := int(b[0])
	if len(b) < 1+l {
		return nil, 0, io.ErrUnexpectedEOF
	}
	d := &Data{Length: b[0], Value: b[1 : 1+l]}
	return d, 1 + l, nil
}

// MarshalLen returns the serial length.
func (d *Data) MarshalLen() int { return 1 + len(d.Value) }

// String returns the Data in human readable format.
func (d *Data) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%x", d.Value)
}

// Segmentation is the XUDT/XUDTS optional Segmentation parameter (Q.713 3.17).
type Segmentation struct {
	FirstSegment   bool
	ClassType      uint8 // 0 = class 0, 1 = class 1
	RemainingCount uint8 // 0..15
	SegmentLocalRef uint32
}

// Code returns the parameter name code.
func (s *Segmentation) Code() ParameterNameCode { return PCodeSegmentation }

// Write serializes Segmentation as a TLV entry (tag, len, value) into b.
func (s *Segmentation) Write(b []byte) (int, error) {
	if len(b) < s.MarshalLen() {
		return 0, io.ErrUnexpectedEOF
	}
	b[0] = uint8(PCodeSegmentation)
	b[1] = 4
	var first, class uint8
	if s.FirstSegment {
		first = 1
	}
	class = s.ClassType & 0x1
	b[2] = first<<7 | class<<6 | (s.RemainingCount & 0x0F)
	b[3] = byte(s.SegmentLocalRef >> 16)
	b[4] = byte(s.SegmentLocalRef >> 8)
	b[5] = byte(s.SegmentLocalRef)
	return 6, nil
}

// MarshalLen returns the serial length (tag + len + 4-byte value).
func (s *Segmentation) MarshalLen() int { return 6 }

// String returns the Segmentation in human readable format.
func (s *Segmentation) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{First: %v, Remaining: %d}", s.FirstSegment, s.RemainingCount)
}

// Importance is the XUDT optional Importance parameter (Q.713 3.19): a
// 3-bit priority value used for congestion-based discard decisions.
type Importance struct {
	Value uint8
}

// Code returns the parameter name code.
func (i *Importance) Code() ParameterNameCode { return PCodeImportance }

// Write serializes Importance as a TLV entry into b.
func (i *Importance) Write(b []byte) (int, error) {
	if len(b) < i.MarshalLen() {
		return 0, io.ErrUnexpectedEOF
	}
	b[0] = uint8(PCodeImportance)
	b[1] = 1
	b[2] = i.Value & 0x07
	return 3, nil
}

// MarshalLen returns the serial length.
func (i *Importance) MarshalLen() int { return 3 }

// String returns the Importance in human readable format.
func (i *Importance) String() string {
	if i == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d", i.Value)
}

// EndOfOptionalParameters is the 1-byte 0x00 terminator of the XUDT optional
// parameter area.
type EndOfOptionalParameters struct{}

// NewEndOfOptionalParameters creates the terminator marker.
func NewEndOfOptionalParameters() *EndOfOptionalParameters { return &EndOfOptionalParameters{} }

// Code returns the parameter name code.
func (e *EndOfOptionalParameters) Code() ParameterNameCode { return PCodeEndOfOptionalParameters }

// Write serializes the terminator (a single 0x00 byte) into b.
func (e *EndOfOptionalParameters) Write(b []byte) (int, error) {
	if len(b) < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b[0] = 0x00
	return 1, nil
}

// MarshalLen returns the serial length.
func (e *EndOfOptionalParameters) MarshalLen() int { return 1 }

// String returns the EndOfOptionalParameters in human readable format.
func (e *EndOfOptionalParameters) String() string { return "<end>" }

// ParseOptionalParameters decodes the TLV-encoded XUDT optional-parameter
// area (terminated by a 0x00 tag) from b.
func ParseOptionalParameters(b []byte) ([]Parameter, int, error) {
	var out []Parameter
	offset := 0
	for offset < len(b) {
		tag := ParameterNameCode(b[offset])
		if tag == PCodeEndOfOptionalParameters {
			out = append(out, NewEndOfOptionalParameters())
			offset++
			break
		}
		if offset+1 >= len(b) {
			return nil, 0, io.ErrUnexpectedEOF
		}
		l := int(b[offset+1])
		if offset+2+l > len(b) {
			return nil, 0, io.ErrUnexpectedEOF
		}
		value := b[offset+2 : offset+2+l]

		switch tag {
		case PCodeSegmentation:
			if l < 4 {
				return nil, 0, io.ErrUnexpectedEOF
			}
			out = append(out, &Segmentation{
				FirstSegment:    value[0]&0x80 != 0,
				ClassType:       (value[0] >> 6) & 0x1,
				RemainingCount:  value[0] & 0x0F,
				SegmentLocalRef: uint32(value[1])<<16 | uint32(value[2])<<8 | uint32(value[3]),
			})
		case PCodeImportance:
			if l < 1 {
				return nil, 0, io.ErrUnexpectedEOF
			}
			out = append(out, &Importance{Value: value[0] & 0x07})
		}

		offset += 2 + l
	}
	return out, offset, nil
}
