package utils

import "testing"

func TestBCDRoundTrip(t *testing.T) {
	cases := []string{"1234567890", "12345", "91*0#", "1"}
	for _, digits := range cases {
		got := BCDDecode(len(digits)%2 != 0, BCDEncode(digits))
		if got != digits {
			t.Errorf("BCD round trip: got %q, want %q", got, digits)
		}
	}
}

func TestBCDEncodeOddPad(t *testing.T) {
	got := BCDEncode("12345")
	want := []byte{0x21, 0x43, 0xF5}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

// TestEncodeTBCDAddress pins the Scenario 4 wire format from spec.md §8:
// encode_tbcd("12345") -> [0x91, 0x21, 0x43, 0xF5].
func TestEncodeTBCDAddress(t *testing.T) {
	got := EncodeTBCDAddress("12345")
	want := []byte{0x91, 0x21, 0x43, 0xF5}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestDecodeTBCDAddressSkipsTONNPI(t *testing.T) {
	got := DecodeTBCDAddress([]byte{0x91, 0x21, 0x43, 0xF5})
	if got != "12345" {
		t.Errorf("got %q, want %q", got, "12345")
	}
}

func TestDecodeTBCDAddressNoPrefix(t *testing.T) {
	// No leading TON/NPI byte (high bit clear on the first packed byte):
	// nothing is stripped.
	got := DecodeTBCDAddress([]byte{0x21, 0x43})
	if got != "1234" {
		t.Errorf("got %q, want %q", got, "1234")
	}
}

func TestBCDDecodeRejectsHex(t *testing.T) {
	// 0xC..0xE are not valid TBCD digits and must not surface as hex chars.
	got := BCDDecode(false, []byte{0xC1})
	if got != "1" {
		t.Errorf("expected invalid high nibble to be dropped, got %q", got)
	}
}

func TestUint24RoundTrip(t *testing.T) {
	v := uint32(0x123456)
	got := Uint24To32(Uint32To24(v))
	if got != v {
		t.Errorf("got %#x, want %#x", got, v)
	}
}
