// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package params

import (
	"fmt"
	"io"

	"github.com/sigtrand/sigtrand/utils"
)

// GlobalTitle is a GlobalTitle inside the Called/Calling Party Address.
type GlobalTitle struct {
	// GTI is included in the Address Indicator which is not a part of
	// Global Title itself, but necessary to encode/decode it properly.
	GTI GlobalTitleIndicator
	TranslationType
	NumberingPlan
	EncodingScheme
	NatureOfAddressIndicator
	AddressInformation []byte
}

// GlobalTitleIndicator is a type of Global Title Indicator.
// See Q.713 3.4.1 for more details.
type GlobalTitleIndicator uint8

// GlobalTitleIndicator values.
const (
	GTINoGT      GlobalTitleIndicator = 0 // no global title included
	GTINAIOnly   GlobalTitleIndicator = 1 // global title includes nature of address indicator only
	GTITTOnly    GlobalTitleIndicator = 2 // global title includes translation type only
	GTITTNPES    GlobalTitleIndicator = 3 // global title includes translation type, numbering plan, and encoding scheme
	GTITTNPESNAI GlobalTitleIndicator = 4 // global title includes translation type, numbering plan, encoding scheme, and nature of address indicator
)

// NatureOfAddressIndicator is a type of Nature of Address Indicator.
type NatureOfAddressIndicator uint8

// NatureOfAddressIndicator values.
const (
	NAIUnknown                   NatureOfAddressIndicator = 0 // unknown
	NAISubscriberNumber          NatureOfAddressIndicator = 1 // subscriber number
	NAINationalSignificantNumber NatureOfAddressIndicator = 3 // national significant number
	NAIInternationalNumber       NatureOfAddressIndicator = 4 // international number
)

// TranslationType is a type of Translation Type.
type TranslationType uint8

// NumberingPlan is a type of Numbering Plan.
type NumberingPlan uint8

// NumberingPlan values.
const (
	NPUnknown        NumberingPlan = 0b0000 // unknown
	NPISDNTelephony  NumberingPlan = 0b0001 // ISDN/telephony numbering plan (E.164)
	NPGeneric        NumberingPlan = 0b0010 // generic numbering plan
	NPData           NumberingPlan = 0b0011 // data numbering plan
	NPTelex          NumberingPlan = 0b0100 // telex numbering plan
	NPMaritimeMobile NumberingPlan = 0b0101 // maritime mobile numbering plan
	NPLandMobile     NumberingPlan = 0b0110 // land mobile numbering plan
	NPISDNMobile     NumberingPlan = 0b0111 // ISDN/mobile numbering plan
	NPPrivate        NumberingPlan = 0b1110 // private network or network-specific numbering plan
)

// EncodingScheme is a type of Encoding Scheme.
type EncodingScheme uint8

// EncodingScheme values.
const (
	ESUnknown          EncodingScheme = 0b0000 // unknown
	ESBCDOdd           EncodingScheme = 0b0001 // BCD, odd number of digits
	ESBCDEven          EncodingScheme = 0b0010 // BCD, even number of digits
	ESNationalSpecific EncodingScheme = 0b0011 // national specific
)

// NewGlobalTitle creates a new GlobalTitle. digits is a decimal (+ '*'/'#')
// digit string; it is BCD-packed before storage, and EncodingScheme is set
// from the digit count's parity (odd/even).
func NewGlobalTitle(
	gti GlobalTitleIndicator,
	tt TranslationType,
	np NumberingPlan,
	nai NatureOfAddressIndicator,
	digits string,
) *GlobalTitle {
	gt := &GlobalTitle{GTI: gti}

	switch gti {
	case GTINAIOnly:
		gt.NatureOfAddressIndicator = nai
	case GTITTOnly:
		gt.TranslationType = tt
	case GTITTNPES:
		gt.TranslationType = tt
		gt.NumberingPlan = np
	case GTITTNPESNAI:
		gt.TranslationType = tt
		gt.NumberingPlan = np
		gt.NatureOfAddressIndicator = nai
	}

	if len(digits)%2 != 0 {
		gt.EncodingScheme = ESBCDOdd
	} else {
		gt.EncodingScheme = ESBCDEven
	}
	gt.AddressInformation = utils.BCDEncode(digits)
	return gt
}

// Write serializes GlobalTitle to the given byte sequence.
func (g *GlobalTitle) Write(b []byte) (int, error) {
	l := g.MarshalLen()
	if len(b) < l {
		return 0, io.ErrUnexpectedEOF
	}

	n := 0
	switch g.GTI {
	case GTINAIOnly:
		b[n] = uint8(g.NatureOfAddressIndicator)
		n++
	case GTITTOnly:
		b[n] = uint8(g.TranslationType)
		n++
	case GTITTNPES:
		b[n] = uint8(g.TranslationType)
		b[n+1] = uint8(g.NumberingPlan)<<4 | uint8(g.EncodingScheme)
		n += 2
	case GTITTNPESNAI:
		b[n] = uint8(g.TranslationType)
		b[n+1] = uint8(g.NumberingPlan)<<4 | uint8(g.EncodingScheme)
		b[n+2] = uint8(g.NatureOfAddressIndicator)
		n += 3
	}

	copy(b[n:l], g.AddressInformation)
	return l, nil
}

// MarshalBinary returns the byte sequence generated from a GlobalTitle.
func (g *GlobalTitle) MarshalBinary() ([]byte, error) {
	b := make([]byte, g.MarshalLen())
	if _, err := g.Write(b); err != nil {
		return nil, err
	}
	return b, nil
}

// MarshalTo puts the byte sequence in the byte array given as b.
func (g *GlobalTitle) MarshalTo(b []byte) error {
	_, err := g.Write(b)
	return err
}

// ParseGlobalTitle decodes given byte sequence as a GlobalTitle.
// The given byte sequence should not include the excess bytes for the parent PartyAddress.
// otherwise, AddressInformation will include them.
func ParseGlobalTitle(gti GlobalTitleIndicator, b []byte) (*GlobalTitle, error) {
	g := &GlobalTitle{GTI: gti}
	if _, err := g.Read(b); err != nil {
		return nil, err
	}

	return g, nil
}

// Read sets the values retrieved from byte sequence in a GlobalTitle.
//
// Since GlobalTitle is a part of PartyAddress, and it does not know the length of the
// AddressInformation, it reads until the end of the given byte sequence. Thus, the
// caller should take care of the length of the byte sequence.
func (g *GlobalTitle) Read(b []byte) (int, error) {
	if len(b) < g.fixedLen() {
		return 0, io.ErrUnexpectedEOF
	}

	n := 0
	switch g.GTI {
	case GTINAIOnly:
		g.NatureOfAddressIndicator = NatureOfAddressIndicator(b[n])
		n++
	case GTITTOnly:
		g.TranslationType = TranslationType(b[n])
		n++
	case GTITTNPES:
		g.TranslationType = TranslationType(b[n])
		g.NumberingPlan = NumberingPlan(b[n+1] >> 4)
		g.EncodingScheme = EncodingScheme(b[n+1] & 0x0F)
		n += 2
	case GTITTNPESNAI:
		g.TranslationType = TranslationType(b[n])
		g.NumberingPlan = NumberingPlan(b[n+1] >> 4)
		g.EncodingScheme = EncodingScheme(b[n+1] & 0x0F)
		g.NatureOfAddressIndicator = NatureOfAddressIndicator(b[n+2])
		n += 3
	}

	g.AddressInformation = b[n:]
	return len(b), nil
}

// UnmarshalBinary sets the values retrieved from byte sequence in a GlobalTitle.
func (g *GlobalTitle) UnmarshalBinary(b []byte) error {
	_, err := g.Read(b)
	return err
}

// MarshalLen returns the serial length of a GlobalTitle.
func (g *GlobalTitle) MarshalLen() int {
	return g.fixedLen() + len(g.AddressInformation)
}

func (g *GlobalTitle) fixedLen() int {
	switch g.GTI {
	case GTINAIOnly, GTITTOnly:
		return 1
	case GTITTNPES:
		return 2
	case GTITTNPESNAI:
		return 3
	default:
		return 0
	}
}

// IsOddDigits reports whether AddressInformation is odd number or not.
func (g *GlobalTitle) IsOddDigits() bool {
	return g.EncodingScheme == ESBCDOdd
}

// String returns the GlobalTitle in a human-readable format.
func (g *GlobalTitle) String() string {
	return fmt.Sprintf("{GTI: %d, TranslationType: %d, NumberingPlan: %d, EncodingScheme: %d, NatureOfAddressIndicator: %d, AddressInformation: %s}",
		g.GTI, g.TranslationType, g.NumberingPlan, g.EncodingScheme, g.NatureOfAddressIndicator, g.Address(),
	)
}

// Address returns the AddressInformation in a human-friendly digit string.
func (g *GlobalTitle) Address() string {
	if g.AddressInformation == nil {
		return ""
	}
	return utils.BCDDecode(g.IsOddDigits(), g.AddressInformation)
}
