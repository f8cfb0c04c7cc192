// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop

// Data Coding Scheme values this core understands (GSM 03.38, §4.5).
const (
	DCSGSM7A    byte = 0x00
	DCSGSM7B    byte = 0x0F
	DCSUCS2A    byte = 0x08
	DCSUCS2B    byte = 0x48
	DCS8BitA    byte = 0x04
	DCS8BitB    byte = 0x44
)

// EncodeUserData dispatches s to the codec named by dcs.
func EncodeUserData(s string, dcs byte) ([]byte, error) {
	switch dcs {
	case DCSGSM7A, DCSGSM7B:
		return EncodeGSM7(s)
	case DCSUCS2A, DCSUCS2B:
		return EncodeUCS2(s), nil
	case DCS8BitA, DCS8BitB:
		return []byte(s), nil
	default:
		return nil, ErrUnsupportedDcs
	}
}

// DecodeUserData dispatches b to the codec named by dcs. For GSM-7, the
// caller must also supply the septet count carried out-of-band (e.g. via
// the MAP length field); septetCount is ignored for the other encodings.
func DecodeUserData(b []byte, dcs byte, septetCount int) (string, error) {
	switch dcs {
	case DCSGSM7A, DCSGSM7B:
		return DecodeGSM7(b, septetCount)
	case DCSUCS2A, DCSUCS2B:
		return DecodeUCS2(b)
	case DCS8BitA, DCS8BitB:
		return string(b), nil
	default:
		return "", ErrUnsupportedDcs
	}
}
