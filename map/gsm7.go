// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package mapop implements the MAP operation layer (C5): SMS-routing and
// USSD operations carried as TCAP Invoke/ReturnResult parameters, plus the
// GSM-7/UCS-2/TBCD user-data codecs those operations embed (§4.5, GSM
// 03.38). Addressing reuses the sccp/params Global Title builder the same
// way the teacher's own CR/CC messages reuse params for connection-oriented
// addressing.
package mapop

import "github.com/pkg/errors"

// ErrUnsupportedDcs is returned for any DCS outside {0x00,0x0F,0x08,0x48,0x04,0x44}.
var ErrUnsupportedDcs = errors.New("mapop: unsupported data coding scheme")

// ErrInvalidGsm7Char is returned when encoding a rune absent from both the
// GSM-7 basic table and its single-shift extension table.
var ErrInvalidGsm7Char = errors.New("mapop: character not representable in gsm-7")

const gsm7Escape = 0x1B

// basicTable is the GSM 03.38 default alphabet, indexed by septet value.
var basicTable = [128]rune{
	'@', '£', '$', '¥', 'è', 'é', 'ù', 'ì', 'ò', 'Ç', '\n', 'Ø', 'ø', '\r', 'Å', 'å',
	'Δ', '_', 'Φ', 'Γ', 'Λ', 'Ω', 'Π', 'Ψ', 'Σ', 'Θ', 'Ξ', 0, 'Æ', 'æ', 'ß', 'É',
	' ', '!', '"', '#', '¤', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	'¡', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', 'Ä', 'Ö', 'Ñ', 'Ü', '§',
	'¿', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'ä', 'ö', 'ñ', 'ü', 'à',
}

// extTable maps the byte following ESC (0x1B) to its extended character.
// Only the code points the spec calls out are populated; anything else
// falls back to ' ' per 3GPP TS 23.038's "display a space" guidance, but
// this implementation rejects unmapped extension bytes on decode instead.
var extTable = map[byte]rune{
	0x0A: '\f',
	0x14: '^',
	0x28: '{',
	0x29: '}',
	0x2F: '\\',
	0x3C: '[',
	0x3D: '~',
	0x3E: ']',
	0x40: '|',
	0x65: '€',
}

var (
	runeToBasic = buildReverse(basicTable)
	runeToExt   = buildExtReverse(extTable)
)

func buildReverse(t [128]rune) map[rune]byte {
	m := make(map[rune]byte, len(t))
	for i, r := range t {
		if r == 0 {
			continue
		}
		if _, exists := m[r]; !exists {
			m[r] = byte(i)
		}
	}
	return m
}

func buildExtReverse(t map[byte]rune) map[rune]byte {
	m := make(map[rune]byte, len(t))
	for b, r := range t {
		m[r] = b
	}
	return m
}

// EncodeGSM7 packs s into GSM 7-bit default-alphabet septets, laid LSB-first
// into octets; unused bits in the final octet are zero-padded.
func EncodeGSM7(s string) ([]byte, error) {
	var septets []byte
	for _, r := range s {
		if b, ok := runeToBasic[r]; ok {
			septets = append(septets, b)
			continue
		}
		if b, ok := runeToExt[r]; ok {
			septets = append(septets, gsm7Escape, b)
			continue
		}
		return nil, errors.Wrapf(ErrInvalidGsm7Char, "rune %q", r)
	}

	nbits := len(septets) * 7
	out := make([]byte, (nbits+7)/8)
	bitpos := 0
	for _, sep := range septets {
		for b := 0; b < 7; b++ {
			if sep&(1<<uint(b)) != 0 {
				out[bitpos/8] |= 1 << uint(bitpos%8)
			}
			bitpos++
		}
	}
	return out, nil
}

// DecodeGSM7 is the exact inverse of EncodeGSM7 for septetCount septets; the
// caller supplies septetCount since the final octet's padding bits are
// otherwise ambiguous between "no more characters" and "one more septet".
func DecodeGSM7(b []byte, septetCount int) (string, error) {
	septets := make([]byte, septetCount)
	bitpos := 0
	for i := 0; i < septetCount; i++ {
		var sep byte
		for bit := 0; bit < 7; bit++ {
			byteIdx := bitpos / 8
			if byteIdx >= len(b) {
				return "", errors.New("mapop: gsm7 buffer too short for septet count")
			}
			if b[byteIdx]&(1<<uint(bitpos%8)) != 0 {
				sep |= 1 << uint(bit)
			}
			bitpos++
		}
		septets[i] = sep
	}

	var out []rune
	for i := 0; i < len(septets); i++ {
		if septets[i] == gsm7Escape && i+1 < len(septets) {
			i++
			r, ok := extTable[septets[i]]
			if !ok {
				return "", errors.Errorf("mapop: unmapped gsm7 extension byte %#02x", septets[i])
			}
			out = append(out, r)
			continue
		}
		out = append(out, basicTable[septets[i]&0x7F])
	}
	return string(out), nil
}
