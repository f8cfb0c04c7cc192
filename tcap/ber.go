// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package tcap implements the TCAP transaction and component layer (C4):
// ITU-T Q.773 BER-encoded Begin/Continue/End/Abort messages riding SCCP
// unit data, demultiplexed by transaction id. The BER primitives here
// follow the tag/length/value walking style of wmnsk/go-tcap's Transaction
// and Components portions, adapted to a transaction-table-owning engine
// instead of that package's stateless encode/decode-only API.
package tcap

import "github.com/pkg/errors"

// Top-level and nested tags (§4.4).
const (
	TagBegin    byte = 0x62
	TagEnd      byte = 0x64
	TagContinue byte = 0x65
	TagAbort    byte = 0x67

	TagOTID             byte = 0x48
	TagDTID             byte = 0x49
	TagDialoguePortion  byte = 0x6B
	TagComponentPortion byte = 0x6C

	TagInvoke               byte = 0xA1
	TagReturnResultLast     byte = 0xA2
	TagReturnError          byte = 0xA3
	TagReject               byte = 0xA4
	TagReturnResultNotLast  byte = 0xA7

	tagExternal byte = 0x28 // [UNIVERSAL 8] EXTERNAL, constructed, carries AARQ/AARE
)

// ErrTooShortToDecode mirrors the sccp package's sentinel for BER underrun.
var ErrTooShortToDecode = errors.New("tcap: too short to decode")

// Element is one parsed BER TLV node; Children is populated for constructed
// (P/C bit set) elements, Value otherwise.
type Element struct {
	Tag      byte
	Value    []byte
	Children []*Element
}

// IsConstructed reports whether the identifier octet's P/C bit (0x20) is set.
func IsConstructed(tag byte) bool { return tag&0x20 != 0 }

// encodeLength writes the BER length octets for n, short form below 128.
func encodeLength(n int) []byte {
	if n < 128 {
		return []byte{byte(n)}
	}
	var rev []byte
	for n > 0 {
		rev = append(rev, byte(n&0xFF))
		n >>= 8
	}
	out := make([]byte, len(rev)+1)
	out[0] = 0x80 | byte(len(rev))
	for i, b := range rev {
		out[len(rev)-i] = b
	}
	return out
}

// decodeLength reads a BER length field starting at b[0]; it returns the
// decoded length and the number of octets the length field itself occupied.
func decodeLength(b []byte) (int, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrTooShortToDecode
	}
	if b[0] < 0x80 {
		return int(b[0]), 1, nil
	}
	n := int(b[0] &^ 0x80)
	if n == 0 || len(b) < 1+n {
		return 0, 0, ErrTooShortToDecode
	}
	l := 0
	for i := 0; i < n; i++ {
		l = l<<8 | int(b[1+i])
	}
	return l, 1 + n, nil
}

// encodeTLV wraps value as tag/length/value.
func encodeTLV(tag byte, value []byte) []byte {
	lb := encodeLength(len(value))
	out := make([]byte, 1+len(lb)+len(value))
	out[0] = tag
	copy(out[1:], lb)
	copy(out[1+len(lb):], value)
	return out
}

// parseTLV decodes a single tag/length/value node from the front of b,
// recursing into Children when the tag is constructed. It returns the node
// and how many bytes of b it consumed.
func parseTLV(b []byte) (*Element, int, error) {
	if len(b) < 2 {
		return nil, 0, ErrTooShortToDecode
	}
	tag := b[0]
	length, lenOctets, err := decodeLength(b[1:])
	if err != nil {
		return nil, 0, err
	}
	start := 1 + lenOctets
	if len(b) < start+length {
		return nil, 0, ErrTooShortToDecode
	}
	value := b[start : start+length]

	el := &Element{Tag: tag}
	if IsConstructed(tag) {
		var children []*Element
		rest := value
		for len(rest) > 0 {
			child, n, err := parseTLV(rest)
			if err != nil {
				return nil, 0, err
			}
			children = append(children, child)
			rest = rest[n:]
		}
		el.Children = children
	} else {
		el.Value = value
	}

	return el, start + length, nil
}

// ParseElements decodes a run of sibling TLV nodes filling all of b.
func ParseElements(b []byte) ([]*Element, error) {
	var out []*Element
	for len(b) > 0 {
		el, n, err := parseTLV(b)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
		b = b[n:]
	}
	return out, nil
}

// find returns the first direct child with the given tag.
func find(children []*Element, tag byte) *Element {
	for _, c := range children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}
