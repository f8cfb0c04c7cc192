package tcap_test

import (
	"bytes"
	"testing"

	"github.com/sigtrand/sigtrand/tcap"
)

func TestBeginEncodeDecodeRoundTrip(t *testing.T) {
	opCode := int32(45)
	inv := tcap.NewInvoke(1, nil, opCode, []byte{0x04, 0x02, 0xde, 0xad})

	msg := &tcap.Message{
		Kind:       tcap.KindBegin,
		OTID:       []byte{0x00, 0x00, 0x00, 0x01},
		AppContext: tcap.ShortMsgGatewayContextV3,
		Components: []*tcap.Component{inv},
	}

	b := msg.MarshalBinary()
	if b[0] != tcap.TagBegin {
		t.Fatalf("got top-level tag %#02x want 0x62", b[0])
	}

	got, err := tcap.Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Kind != tcap.KindBegin {
		t.Fatalf("got kind %v", got.Kind)
	}
	if !bytes.Equal(got.OTID, msg.OTID) {
		t.Fatalf("got otid %x want %x", got.OTID, msg.OTID)
	}
	if len(got.Components) != 1 || got.Components[0].InvokeID != 1 || *got.Components[0].OpCode != 45 {
		t.Fatalf("got components %+v", got.Components)
	}
	if !bytes.Equal(got.Components[0].Parameter, []byte{0x04, 0x02, 0xde, 0xad}) {
		t.Fatalf("got parameter %x", got.Components[0].Parameter)
	}
}

func TestEndReturnResultLastRoundTrip(t *testing.T) {
	opCode := int32(45)
	rr := tcap.NewReturnResultLast(1, &opCode, []byte{0x30, 0x02, 0x01, 0x01})

	msg := &tcap.Message{
		Kind:       tcap.KindEnd,
		DTID:       []byte{0x00, 0x00, 0x00, 0x01},
		Components: []*tcap.Component{rr},
	}

	b := msg.MarshalBinary()
	if b[0] != tcap.TagEnd {
		t.Fatalf("got tag %#02x want 0x64", b[0])
	}

	got, err := tcap.Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(got.DTID, msg.DTID) {
		t.Fatalf("got dtid %x want %x", got.DTID, msg.DTID)
	}
	if len(got.Components) != 1 || got.Components[0].Kind != tcap.KindReturnResultLast {
		t.Fatalf("got components %+v", got.Components)
	}
}

func TestOIDRoundTrip(t *testing.T) {
	got := tcap.DecodeOID(tcap.EncodeOID(tcap.ShortMsgGatewayContextV3))
	if len(got) != len(tcap.ShortMsgGatewayContextV3) {
		t.Fatalf("got %v want %v", got, tcap.ShortMsgGatewayContextV3)
	}
	for i := range got {
		if got[i] != tcap.ShortMsgGatewayContextV3[i] {
			t.Fatalf("got %v want %v", got, tcap.ShortMsgGatewayContextV3)
		}
	}
}

func TestAbortCauseRoundTrip(t *testing.T) {
	cause := tcap.AbortUnrecognizedTransactionID
	msg := &tcap.Message{Kind: tcap.KindAbort, DTID: []byte{0, 0, 0, 7}, AbortCause: &cause}
	got, err := tcap.Parse(msg.MarshalBinary())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.AbortCause == nil || *got.AbortCause != cause {
		t.Fatalf("got abort cause %v want %v", got.AbortCause, cause)
	}
}
