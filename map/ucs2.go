// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// EncodeUCS2 encodes s as big-endian UCS-2/UTF-16, splitting code points
// above the BMP (> U+FFFF) into surrogate pairs.
func EncodeUCS2(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(units))
	for i, u := range units {
		binary.BigEndian.PutUint16(out[i*2:], u)
	}
	return out
}

// DecodeUCS2 is the exact inverse of EncodeUCS2.
func DecodeUCS2(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", errors.New("mapop: ucs2 buffer has odd length")
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[i*2:])
	}
	return string(utf16.Decode(units)), nil
}
