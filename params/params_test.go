// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package params_test

import (
	"encoding"
	"testing"

	"github.com/pascaldekloe/goe/verify"
	"github.com/sigtrand/sigtrand/params"
)

type serializable interface {
	encoding.BinaryMarshaler
	MarshalLen() int
}

type decodeFunc func([]byte) (serializable, error)

var testcases = []struct {
	description string
	structured  serializable
	serialized  []byte
	decodeFunc
}{
	{
		description: "PartyAddress/SSNOnly+GT",
		structured: params.NewPartyAddress(
			false, false, true, // routeOnSSN, pcPresent, ssnPresent
			0, 6, // pc (unused), ssn
			params.NewGlobalTitle(
				params.GTITTNPESNAI,
				0,                      // TranslationType
				params.NPISDNTelephony, // NumberingPlan
				params.NAIInternationalNumber,
				"1234567890",
			),
		),
		serialized: []byte{
			0x0a, 0x12, 0x06, 0x00, 0x12, 0x04, 0x21, 0x43, 0x65, 0x87, 0x09,
		},
		decodeFunc: func(b []byte) (serializable, error) {
			v, err := params.ParsePartyAddress(b)
			if err != nil {
				return nil, err
			}

			return v, nil
		},
	},
	{
		description: "PartyAddress/PCOnly",
		structured: params.NewPartyAddress(
			true, true, false,
			0x1234, 0,
			nil,
		),
		serialized: []byte{
			0x03, 0x41, 0x34, 0x12,
		},
		decodeFunc: func(b []byte) (serializable, error) {
			v, err := params.ParsePartyAddress(b)
			if err != nil {
				return nil, err
			}

			return v, nil
		},
	},
}

func TestStructuredParams(t *testing.T) {
	t.Helper()

	for _, c := range testcases {
		t.Run(c.description, func(t *testing.T) {
			t.Run("Decode", func(t *testing.T) {
				prm, err := c.decodeFunc(c.serialized)
				if err != nil {
					t.Fatal(err)
				}

				if got, want := prm, c.structured; !verify.Values(t, "", got, want) {
					t.Fail()
				}
			})

			t.Run("Serialize", func(t *testing.T) {
				b, err := c.structured.MarshalBinary()
				if err != nil {
					t.Fatal(err)
				}

				if got, want := b, c.serialized; !verify.Values(t, "", got, want) {
					t.Fail()
				}
			})

			t.Run("Len", func(t *testing.T) {
				if got, want := c.structured.MarshalLen(), len(c.serialized); got != want {
					t.Fatalf("got %v want %v", got, want)
				}
			})
		})
	}
}
