// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop

import (
	"net"
	"testing"
	"time"

	"github.com/sigtrand/sigtrand"
	"github.com/sigtrand/sigtrand/m3ua"
	"github.com/sigtrand/sigtrand/params"
	"github.com/sigtrand/sigtrand/sctp"
	"github.com/sigtrand/sigtrand/tcap"
	"github.com/sigtrand/sigtrand/utils"
)

func gtAddr(ssn uint8, digits string) *params.PartyAddress {
	return params.NewPartyAddress(false, false, true, 0, ssn,
		params.NewGlobalTitle(params.GTITTNPESNAI, 0, params.NPISDNTelephony, params.NAIInternationalNumber, digits))
}

// TestSendRoutingInfoForSMRoundTrip exercises an end-to-end SRI-SM dialogue
// over a full sctp/m3ua/sccp/tcap stack: the client Endpoint Begins, the
// server replies with a ReturnResultLast carrying an IMSI/MSC-number result,
// and the client decodes it back into a RoutingInfo.
func TestSendRoutingInfoForSMRoundTrip(t *testing.T) {
	c1, c2 := net.Pipe()
	clientAssoc, serverAssoc := sctp.NewForTest(c1), sctp.NewForTest(c2)
	clientLink := m3ua.NewLink(clientAssoc, 2, time.Second)
	serverLink := m3ua.NewLink(serverAssoc, 2, time.Second)
	clientLink.SetStateForTest(m3ua.Active)
	serverLink.SetStateForTest(m3ua.Active)
	go serverLink.Recv()
	go clientLink.Recv()

	clientEP := sccp.NewEndpoint(clientLink, 1, 2)
	serverEP := sccp.NewEndpoint(serverLink, 2, 2)
	go clientEP.Run()
	go serverEP.Run()

	hlrAddr := gtAddr(SSNHLR, "2222")

	clientEngine := tcap.NewEngine(clientEP, SSNHLR, gtAddr(SSNHLR, "1111"), 2)
	serverEngine := tcap.NewEngine(serverEP, SSNHLR, hlrAddr, 1)

	go func() {
		ev := <-serverEngine.Events()
		if ev.Msg.Kind != tcap.KindBegin {
			t.Errorf("got kind %v want Begin", ev.Msg.Kind)
			return
		}
		result := encodeSequence(
			taggedOctetString(0, utils.EncodeTBCDAddress("111222333444555")),
			taggedOctetString(1, utils.EncodeTBCDAddress("19998887766")),
		)
		rr := tcap.NewReturnResultLast(ev.Msg.Components[0].InvokeID, nil, result)
		if err := serverEngine.RespondEnd(ev.Msg.OTID, []*tcap.Component{rr}); err != nil {
			t.Errorf("RespondEnd: %v", err)
		}
	}()

	mapEndpoint := &Endpoint{
		engine:           clientEngine,
		hlrAddr:          hlrAddr,
		mscAddr:          hlrAddr,
		scAddr:           gtAddr(SSNSMSGMSC, "19990001122"),
		operationTimeout: 2 * time.Second,
	}

	ri, err := mapEndpoint.SendRoutingInfoForSM("19991234567")
	if err != nil {
		t.Fatalf("SendRoutingInfoForSM: %v", err)
	}
	if ri.IMSI != "111222333444555" {
		t.Fatalf("got IMSI %q want %q", ri.IMSI, "111222333444555")
	}
	if ri.MSCNumber != "19998887766" {
		t.Fatalf("got MSCNumber %q want %q", ri.MSCNumber, "19998887766")
	}
}

// TestProcessUSSDRoundTrip exercises a network-initiated USSD request whose
// response is decoded back via the GSM-7 user-data codec.
func TestProcessUSSDRoundTrip(t *testing.T) {
	c1, c2 := net.Pipe()
	clientAssoc, serverAssoc := sctp.NewForTest(c1), sctp.NewForTest(c2)
	clientLink := m3ua.NewLink(clientAssoc, 2, time.Second)
	serverLink := m3ua.NewLink(serverAssoc, 2, time.Second)
	clientLink.SetStateForTest(m3ua.Active)
	serverLink.SetStateForTest(m3ua.Active)
	go serverLink.Recv()
	go clientLink.Recv()

	clientEP := sccp.NewEndpoint(clientLink, 1, 2)
	serverEP := sccp.NewEndpoint(serverLink, 2, 2)
	go clientEP.Run()
	go serverEP.Run()

	hlrAddr := gtAddr(SSNHLR, "2222")
	clientEngine := tcap.NewEngine(clientEP, SSNHLR, gtAddr(SSNHLR, "1111"), 2)
	serverEngine := tcap.NewEngine(serverEP, SSNHLR, hlrAddr, 1)

	go func() {
		ev := <-serverEngine.Events()
		reply, err := EncodeGSM7("BAL=5")
		if err != nil {
			t.Errorf("encode reply: %v", err)
			return
		}
		result := encodeSequence(
			taggedInteger(0, int32(DCSGSM7A)),
			taggedOctetString(1, reply),
		)
		rr := tcap.NewReturnResultLast(ev.Msg.Components[0].InvokeID, nil, result)
		if err := serverEngine.RespondEnd(ev.Msg.OTID, []*tcap.Component{rr}); err != nil {
			t.Errorf("RespondEnd: %v", err)
		}
	}()

	mapEndpoint := &Endpoint{
		engine:           clientEngine,
		hlrAddr:          hlrAddr,
		mscAddr:          hlrAddr,
		scAddr:           gtAddr(SSNSMSGMSC, "19990001122"),
		operationTimeout: 2 * time.Second,
	}

	resp, err := mapEndpoint.ProcessUSSD("19991234567", "*100#", DCSGSM7A)
	if err != nil {
		t.Fatalf("ProcessUSSD: %v", err)
	}
	if resp.Text != "BAL=5" {
		t.Fatalf("got text %q want %q", resp.Text, "BAL=5")
	}
}
