// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop

import (
	"github.com/sigtrand/sigtrand/tcap"
	"github.com/sigtrand/sigtrand/utils"
)

// tbcdToDigits unpacks a MAP AddressString: the 0xF fill nibble (possible in
// the odd final byte) never renders a character regardless of the odd flag
// passed, so the parser does not need to track parameter length parity
// here; a leading TON/NPI octet, when present, is stripped by
// DecodeTBCDAddress's high-bit heuristic.
func tbcdToDigits(b []byte) string {
	return utils.DecodeTBCDAddress(b)
}

const seqTag byte = 0x30

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

func encodeTLV(tag byte, value []byte) []byte {
	lb := encodeLength(len(value))
	out := make([]byte, 1+len(lb)+len(value))
	out[0] = tag
	copy(out[1:], lb)
	copy(out[1+len(lb):], value)
	return out
}

// taggedOctetString builds a context-specific [n] IMPLICIT OCTET STRING.
func taggedOctetString(n byte, value []byte) []byte {
	return encodeTLV(0x80|n, value)
}

// taggedBoolean builds a context-specific [n] IMPLICIT BOOLEAN.
func taggedBoolean(n byte, v bool) []byte {
	b := byte(0x00)
	if v {
		b = 0xFF
	}
	return encodeTLV(0x80|n, []byte{b})
}

// taggedInteger builds a context-specific [n] IMPLICIT INTEGER.
func taggedInteger(n byte, v int32) []byte {
	return encodeTLV(0x80|n, encodeMinimalInt(v))
}

func encodeMinimalInt(v int32) []byte {
	if v >= -128 && v <= 127 {
		return []byte{byte(v)}
	}
	b := []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	i := 0
	for i < 3 && ((b[i] == 0x00 && b[i+1]&0x80 == 0) || (b[i] == 0xFF && b[i+1]&0x80 != 0)) {
		i++
	}
	return b[i:]
}

func decodeMinimalInt(b []byte) int32 {
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

// encodeSequence wraps parts, concatenated, in a universal SEQUENCE tag.
func encodeSequence(parts ...[]byte) []byte {
	var body []byte
	for _, p := range parts {
		body = append(body, p...)
	}
	return encodeTLV(seqTag, body)
}

func findTag(elems []*tcap.Element, tag byte) *tcap.Element {
	for _, e := range elems {
		if e.Tag == tag {
			return e
		}
	}
	return nil
}

// parseRoutingInfoResult decodes a SendRoutingInfoForSM result parameter:
// a SEQUENCE of IMSI [0], MSC number [1], and an optional LMSI [2].
func parseRoutingInfoResult(param []byte) (*RoutingInfo, error) {
	top, err := tcap.ParseElements(param)
	if err != nil {
		return nil, err
	}
	seq := top
	if len(top) == 1 && top[0].Tag == seqTag {
		seq = top[0].Children
	}

	ri := &RoutingInfo{}
	if e := findTag(seq, 0x80); e != nil {
		ri.IMSI = tbcdToDigits(e.Value)
	}
	if e := findTag(seq, 0x81); e != nil {
		ri.MSCNumber = tbcdToDigits(e.Value)
	}
	if e := findTag(seq, 0x82); e != nil {
		ri.LMSI = e.Value
	}
	return ri, nil
}

// parseUssdResult decodes a ProcessUnstructuredSS-Request/Response
// parameter: a SEQUENCE of DCS [0] INTEGER and USSD-String [1] OCTET STRING.
func parseUssdResult(param []byte) (*UssdResponse, error) {
	top, err := tcap.ParseElements(param)
	if err != nil {
		return nil, err
	}
	seq := top
	if len(top) == 1 && top[0].Tag == seqTag {
		seq = top[0].Children
	}

	resp := &UssdResponse{}
	if e := findTag(seq, 0x80); e != nil {
		resp.DCS = byte(decodeMinimalInt(e.Value))
	}
	if e := findTag(seq, 0x81); e != nil {
		text, err := DecodeUserData(e.Value, resp.DCS, len(e.Value)*8/7)
		if err != nil {
			return nil, err
		}
		resp.Text = text
	}
	return resp, nil
}
