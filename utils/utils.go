// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package utils holds small encoding helpers shared by the sccp, map and
// tcap packages: BCD/TBCD digit packing and the 24-bit local-reference
// conversions used by the connection-oriented SCCP messages.
package utils

// bcdSentinel maps a packed nibble to its digit-string rune. TBCD (Q.713,
// 3GPP TS 29.002) reserves 0xA and 0xB for '*' and '#'; 0xF is the
// odd-length fill nibble and is never emitted by BCDDecode.
var bcdSentinel = [16]byte{
	'0', '1', '2', '3', '4', '5', '6', '7',
	'8', '9', '*', '#', 0, 0, 0, 0,
}

// BCDDecode unpacks TBCD digits, low-nibble first. odd reports whether the
// final byte's high nibble is a real digit (false) or the 0xF fill (true).
// Only decimal digits plus the '*'/'#' sentinels are accepted; any other
// nibble value is dropped rather than rendered as a hex digit.
func BCDDecode(odd bool, b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for i, v := range b {
		low := v & 0x0F
		if r := bcdSentinel[low]; r != 0 {
			out = append(out, r)
		}

		high := v >> 4
		if odd && i == len(b)-1 {
			continue
		}
		if r := bcdSentinel[high]; r != 0 {
			out = append(out, r)
		}
	}
	return string(out)
}

// BCDEncode packs a decimal(+*/#) digit string into TBCD, low-nibble first.
// An odd number of digits pads the final high nibble with 0xF.
func BCDEncode(digits string) []byte {
	n := len(digits)
	out := make([]byte, (n+1)/2)
	for i, r := range []byte(digits) {
		nibble := bcdNibble(r)
		if i%2 == 0 {
			out[i/2] = nibble
		} else {
			out[i/2] |= nibble << 4
		}
	}
	if n%2 != 0 {
		out[n/2] |= 0xF0
	}
	return out
}

func bcdNibble(r byte) byte {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r == '*':
		return 0xA
	case r == '#':
		return 0xB
	default:
		return 0xF
	}
}

// tonNPIInternationalISDN is the TON/NPI octet MAP AddressString parameters
// (MSISDN, IMSI, service-centre address, SM-RP-DA/OA) are prefixed with:
// international number, ISDN/telephony numbering plan (3GPP TS 29.002).
const tonNPIInternationalISDN = 0x91

// EncodeTBCDAddress packs digits as a MAP AddressString: a leading TON/NPI
// octet followed by BCDEncode's packed digits, per spec.md §8 Scenario 4
// (encode_tbcd("12345") -> [0x91, 0x21, 0x43, 0xF5]).
func EncodeTBCDAddress(digits string) []byte {
	return append([]byte{tonNPIInternationalISDN}, BCDEncode(digits)...)
}

// DecodeTBCDAddress unpacks a MAP AddressString, skipping the leading
// TON/NPI octet only when it appears -- per spec.md §4.3's heuristic, a
// leading byte with its high bit set.
func DecodeTBCDAddress(b []byte) string {
	if len(b) > 0 && b[0]&0x80 != 0 {
		b = b[1:]
	}
	return BCDDecode(false, b)
}

// SwappedBytesToStr is the GT/address-display equivalent of BCDDecode kept
// under its historical name for callers that address digits by the
// odd/even "swapped nibble" convention used throughout Q.713 addressing.
func SwappedBytesToStr(b []byte, odd bool) string {
	return BCDDecode(odd, b)
}

// StrToSwappedBytes is the inverse of SwappedBytesToStr.
func StrToSwappedBytes(s string) []byte {
	return BCDEncode(s)
}

// Uint24To32 widens a 3-byte big-endian local reference into a uint32.
func Uint24To32(b []byte) uint32 {
	_ = b[2]
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// Uint32To24 narrows a uint32 local reference into its 3-byte big-endian form.
func Uint32To24(v uint32) []byte {
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
}
