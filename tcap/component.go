// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package tcap

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ComponentKind discriminates the Component sum type (§3.1).
type ComponentKind uint8

const (
	KindInvoke ComponentKind = iota
	KindReturnResultLast
	KindReturnResultNotLast
	KindReturnError
	KindReject
)

// Component is a tagged union over Invoke/ReturnResult*/ReturnError/Reject,
// sharing invoke-id access via InvokeID rather than an inheritance
// hierarchy, per the spec's design note on dynamic typing.
type Component struct {
	Kind ComponentKind

	InvokeID int32
	LinkedID *int32 // Invoke only

	OpCode    *int32 // Invoke, ReturnResult* (optional)
	ErrorCode int32  // ReturnError only
	ProblemCode byte // Reject only; Problem code octet, general/invoke/returnResult/returnError class folded in

	Parameter []byte
}

// NewInvoke builds an Invoke component. opCode width follows the spec's
// generalized multi-byte invoke-id/op-code Open Question resolution: both
// are encoded as the minimal big-endian INTEGER rather than a fixed byte.
func NewInvoke(invokeID int32, linkedID *int32, opCode int32, parameter []byte) *Component {
	return &Component{Kind: KindInvoke, InvokeID: invokeID, LinkedID: linkedID, OpCode: &opCode, Parameter: parameter}
}

// NewReturnResultLast builds a ReturnResultLast component.
func NewReturnResultLast(invokeID int32, opCode *int32, parameter []byte) *Component {
	return &Component{Kind: KindReturnResultLast, InvokeID: invokeID, OpCode: opCode, Parameter: parameter}
}

// NewReturnResultNotLast builds a ReturnResultNotLast component.
func NewReturnResultNotLast(invokeID int32, opCode *int32, parameter []byte) *Component {
	return &Component{Kind: KindReturnResultNotLast, InvokeID: invokeID, OpCode: opCode, Parameter: parameter}
}

// NewReturnError builds a ReturnError component.
func NewReturnError(invokeID int32, errorCode int32, parameter []byte) *Component {
	return &Component{Kind: KindReturnError, InvokeID: invokeID, ErrorCode: errorCode, Parameter: parameter}
}

// NewReject builds a Reject component. invokeID may be absent on the wire
// (general problem); callers pass -1 to mean "absent".
func NewReject(invokeID int32, problemCode byte) *Component {
	return &Component{Kind: KindReject, InvokeID: invokeID, ProblemCode: problemCode}
}

func encodeInt(v int32) []byte {
	if v >= -128 && v <= 127 {
		return []byte{byte(v)}
	}
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	// trim redundant leading sign-extension bytes, keeping at least 1.
	i := 0
	for i < 3 && ((b[i] == 0x00 && b[i+1]&0x80 == 0) || (b[i] == 0xFF && b[i+1]&0x80 != 0)) {
		i++
	}
	return b[i:]
}

// remainderBytes re-serializes every child not matching one of the given
// tags, in original order, reconstructing raw DER bytes so that an
// application-defined parameter (e.g. a context-tagged SEQUENCE the MAP
// layer placed here) survives a parse/re-encode round trip unchanged.
func remainderBytes(children []*Element, skip ...byte) []byte {
	var out []byte
	for _, c := range children {
		skipped := false
		for _, s := range skip {
			if c.Tag == s {
				skipped = true
				break
			}
		}
		if skipped {
			continue
		}
		out = append(out, reencode(c)...)
	}
	return out
}

func reencode(el *Element) []byte {
	if el.Children != nil {
		var body []byte
		for _, c := range el.Children {
			body = append(body, reencode(c)...)
		}
		return encodeTLV(el.Tag, body)
	}
	return encodeTLV(el.Tag, el.Value)
}

func decodeInt(b []byte) int32 {
	var v int32
	if len(b) == 0 {
		return 0
	}
	if b[0]&0x80 != 0 {
		v = -1
	}
	for _, o := range b {
		v = v<<8 | int32(o)
	}
	return v
}

const (
	invokeIDTag  byte = 0x02
	linkedIDTag  byte = 0x80 // [0] IMPLICIT
	opCodeTag    byte = 0x02
	localOpTag   byte = 0x02
	paramSeqTag  byte = 0x30
)

// MarshalBinary encodes the Component as its outer TLV (Invoke=0xA1,
// ReturnResultLast=0xA2, ReturnError=0xA3, Reject=0xA4,
// ReturnResultNotLast=0xA7).
func (c *Component) MarshalBinary() []byte {
	var body []byte
	var tag byte

	switch c.Kind {
	case KindInvoke:
		tag = TagInvoke
		body = append(body, encodeTLV(invokeIDTag, encodeInt(c.InvokeID))...)
		if c.LinkedID != nil {
			body = append(body, encodeTLV(linkedIDTag, encodeInt(*c.LinkedID))...)
		}
		if c.OpCode != nil {
			body = append(body, encodeTLV(opCodeTag, encodeInt(*c.OpCode))...)
		}
		if c.Parameter != nil {
			body = append(body, c.Parameter...)
		}
	case KindReturnResultLast, KindReturnResultNotLast:
		if c.Kind == KindReturnResultLast {
			tag = TagReturnResultLast
		} else {
			tag = TagReturnResultNotLast
		}
		body = append(body, encodeTLV(invokeIDTag, encodeInt(c.InvokeID))...)
		if c.OpCode != nil || c.Parameter != nil {
			var seq []byte
			if c.OpCode != nil {
				seq = append(seq, encodeTLV(opCodeTag, encodeInt(*c.OpCode))...)
			}
			if c.Parameter != nil {
				seq = append(seq, c.Parameter...)
			}
			body = append(body, encodeTLV(paramSeqTag, seq)...)
		}
	case KindReturnError:
		tag = TagReturnError
		body = append(body, encodeTLV(invokeIDTag, encodeInt(c.InvokeID))...)
		body = append(body, encodeTLV(localOpTag, encodeInt(c.ErrorCode))...)
		if c.Parameter != nil {
			body = append(body, c.Parameter...)
		}
	case KindReject:
		tag = TagReject
		if c.InvokeID < 0 {
			body = append(body, encodeTLV(0x05, nil)...) // NULL: general problem
		} else {
			body = append(body, encodeTLV(invokeIDTag, encodeInt(c.InvokeID))...)
		}
		body = append(body, encodeTLV(0x81, []byte{c.ProblemCode})...)
	}

	return encodeTLV(tag, body)
}

// ParseComponent decodes a single Component from its outer TLV element.
func ParseComponent(el *Element) (*Component, error) {
	c := &Component{}
	switch el.Tag {
	case TagInvoke:
		c.Kind = KindInvoke
	case TagReturnResultLast:
		c.Kind = KindReturnResultLast
	case TagReturnResultNotLast:
		c.Kind = KindReturnResultNotLast
	case TagReturnError:
		c.Kind = KindReturnError
	case TagReject:
		c.Kind = KindReject
	default:
		return nil, errors.New("tcap: unknown component tag")
	}

	// invokeIDTag/opCodeTag/localOpTag all share the universal INTEGER tag
	// (0x02), so sibling elements cannot be told apart by tag alone; each
	// branch below walks el.Children positionally instead of using find().
	switch c.Kind {
	case KindInvoke:
		children := el.Children
		idx := 0
		if idx < len(children) && children[idx].Tag == invokeIDTag {
			c.InvokeID = decodeInt(children[idx].Value)
			idx++
		}
		if idx < len(children) && children[idx].Tag == linkedIDTag {
			v := decodeInt(children[idx].Value)
			c.LinkedID = &v
			idx++
		}
		if idx < len(children) && children[idx].Tag == opCodeTag {
			v := decodeInt(children[idx].Value)
			c.OpCode = &v
			idx++
		}
		c.Parameter = remainderBytes(children[idx:])
	case KindReturnResultLast, KindReturnResultNotLast:
		children := el.Children
		idx := 0
		if idx < len(children) && children[idx].Tag == invokeIDTag {
			c.InvokeID = decodeInt(children[idx].Value)
			idx++
		}
		if idx < len(children) && children[idx].Tag == paramSeqTag {
			seq := children[idx].Children
			sidx := 0
			if sidx < len(seq) && seq[sidx].Tag == opCodeTag {
				v := decodeInt(seq[sidx].Value)
				c.OpCode = &v
				sidx++
			}
			c.Parameter = remainderBytes(seq[sidx:])
		}
	case KindReturnError:
		children := el.Children
		idx := 0
		if idx < len(children) && children[idx].Tag == invokeIDTag {
			c.InvokeID = decodeInt(children[idx].Value)
			idx++
		}
		if idx < len(children) && children[idx].Tag == localOpTag {
			c.ErrorCode = decodeInt(children[idx].Value)
			idx++
		}
		c.Parameter = remainderBytes(children[idx:])
	case KindReject:
		if e := find(el.Children, invokeIDTag); e != nil {
			c.InvokeID = decodeInt(e.Value)
		} else {
			c.InvokeID = -1
		}
		if e := find(el.Children, 0x81); e != nil && len(e.Value) > 0 {
			c.ProblemCode = e.Value[0]
		}
	}

	return c, nil
}
