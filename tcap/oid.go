// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package tcap

// Well-known application context names (§4.5, §6), as arcs.
var (
	ShortMsgGatewayContextV3    = []uint32{0, 4, 0, 0, 1, 0, 20, 3}
	ShortMsgRelayContextV3      = []uint32{0, 4, 0, 0, 1, 0, 21, 3}
	NetworkUnstructuredSsContextV2 = []uint32{0, 4, 0, 0, 1, 0, 19, 2}
)

// EncodeOID encodes a sequence of unsigned arcs as an ASN.1 OBJECT
// IDENTIFIER value: first octet = 40*arc1 + arc2, subsequent arcs base-128
// with the continuation bit set on all but the final octet of each arc.
func EncodeOID(arcs []uint32) []byte {
	if len(arcs) < 2 {
		return nil
	}
	out := []byte{byte(40*arcs[0] + arcs[1])}
	for _, arc := range arcs[2:] {
		out = append(out, encodeBase128(arc)...)
	}
	return out
}

func encodeBase128(v uint32) []byte {
	if v == 0 {
		return []byte{0}
	}
	var rev []byte
	for v > 0 {
		rev = append(rev, byte(v&0x7F))
		v >>= 7
	}
	out := make([]byte, len(rev))
	for i, b := range rev {
		o := len(rev) - 1 - i
		if i != 0 {
			b |= 0x80
		}
		out[o] = b
	}
	return out
}

// DecodeOID is the inverse of EncodeOID.
func DecodeOID(b []byte) []uint32 {
	if len(b) == 0 {
		return nil
	}
	arcs := []uint32{uint32(b[0]) / 40, uint32(b[0]) % 40}
	var cur uint32
	for _, octet := range b[1:] {
		cur = cur<<7 | uint32(octet&0x7F)
		if octet&0x80 == 0 {
			arcs = append(arcs, cur)
			cur = 0
		}
	}
	return arcs
}
