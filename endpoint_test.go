package sccp_test

import (
	"net"
	"testing"
	"time"

	"github.com/sigtrand/sigtrand"
	"github.com/sigtrand/sigtrand/m3ua"
	"github.com/sigtrand/sigtrand/params"
	"github.com/sigtrand/sigtrand/sctp"
)

func addr(ssn uint8, digits string) *params.PartyAddress {
	return params.NewPartyAddress(false, false, true, 0, ssn,
		params.NewGlobalTitle(params.GTITTNPESNAI, 0, params.NPISDNTelephony, params.NAIInternationalNumber, digits))
}

func TestEndpointDeliversToRegisteredSSN(t *testing.T) {
	c1, c2 := net.Pipe()
	clientAssoc := sctp.NewForTest(c1)
	serverAssoc := sctp.NewForTest(c2)

	clientLink := m3ua.NewLink(clientAssoc, 2, time.Second)
	serverLink := m3ua.NewLink(serverAssoc, 2, time.Second)
	clientLink.SetStateForTest(m3ua.Active)
	go serverLink.Recv()

	ep := sccp.NewEndpoint(serverLink, 2, 2)
	received := make(chan []byte, 1)
	ep.RegisterHandler(6, func(calling *params.PartyAddress, data []byte) {
		received <- data
	})
	go ep.Run()

	udt := sccp.NewUDT(1, true, addr(6, "1234"), addr(8, "5678"), []byte("hello"))
	b, err := udt.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := clientLink.SendData(1, 2, 3, 2, 0, 0, b); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case got := <-received:
		if string(got) != "hello" {
			t.Fatalf("got %q want hello", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}
