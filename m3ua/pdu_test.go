package m3ua_test

import (
	"bytes"
	"testing"

	"github.com/sigtrand/sigtrand/m3ua"
)

func TestPDURoundTrip(t *testing.T) {
	pdu := m3ua.NewPDU(m3ua.ClassASPSM, m3ua.TypeASPUp,
		&m3ua.Param{Tag: m3ua.TagInfoString, Value: []byte("abc")},
	)

	b, err := pdu.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// header(8) + tag/len(4) + "abc"(3) padded to 4 = 8 + 4 + 4 = 16
	if len(b) != 16 {
		t.Fatalf("got len %d want 16", len(b))
	}

	got, err := m3ua.ParsePDU(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Class != m3ua.ClassASPSM || got.Type != m3ua.TypeASPUp {
		t.Fatalf("got class/type %v/%v", got.Class, got.Type)
	}
	p := got.Param(m3ua.TagInfoString)
	if p == nil || !bytes.Equal(p.Value, []byte("abc")) {
		t.Fatalf("got param %v", p)
	}
}

func TestProtocolDataRoundTrip(t *testing.T) {
	pd := &m3ua.ProtocolData{OPC: 1, DPC: 2, SI: 3, NI: 0, MP: 0, SLS: 1, UserData: []byte{0xde, 0xad}}
	got, err := m3ua.ParseProtocolData(pd.MarshalBinary())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.OPC != 1 || got.DPC != 2 || got.SI != 3 || got.SLS != 1 || !bytes.Equal(got.UserData, []byte{0xde, 0xad}) {
		t.Fatalf("got %+v", got)
	}
}

func TestParamPadding(t *testing.T) {
	p := &m3ua.Param{Tag: m3ua.TagRoutingContext, Value: []byte{1, 2, 3, 4, 5}}
	if p.MarshalLen()%4 != 0 {
		t.Fatalf("param length %d not a multiple of 4", p.MarshalLen())
	}
}
