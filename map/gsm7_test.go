// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop_test

import (
	"testing"

	mapop "github.com/sigtrand/sigtrand/map"
)

func TestGSM7RoundTrip(t *testing.T) {
	in := "Hello, World!"
	enc, err := mapop.EncodeGSM7(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := mapop.DecodeGSM7(enc, len(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %q want %q", out, in)
	}
}

func TestGSM7ExtensionChar(t *testing.T) {
	in := "a{b}c"
	enc, err := mapop.EncodeGSM7(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// '{' and '}' each expand to an ESC + extension septet, so the septet
	// count is len(in) plus one per extension character.
	out, err := mapop.DecodeGSM7(enc, len(in)+2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %q want %q", out, in)
	}
}

func TestGSM7InvalidChar(t *testing.T) {
	if _, err := mapop.EncodeGSM7("héllo日本語"); err == nil {
		t.Fatal("expected error encoding unrepresentable rune")
	}
}
