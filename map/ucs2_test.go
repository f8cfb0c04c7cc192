// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop_test

import (
	"testing"

	mapop "github.com/sigtrand/sigtrand/map"
)

func TestUCS2RoundTrip(t *testing.T) {
	in := "héllo日本語😀"
	enc := mapop.EncodeUCS2(in)
	if len(enc)%2 != 0 {
		t.Fatalf("encoded length not even: %d", len(enc))
	}

	out, err := mapop.DecodeUCS2(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %q want %q", out, in)
	}
}

func TestUCS2OddLength(t *testing.T) {
	if _, err := mapop.DecodeUCS2([]byte{0x00}); err == nil {
		t.Fatal("expected error for odd-length buffer")
	}
}
