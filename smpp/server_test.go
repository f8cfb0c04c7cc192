// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package smpp_test

import (
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/sigtrand/sigtrand/smpp"
)

type fakeRouter struct {
	mu  sync.Mutex
	got []smpp.RoutedMessage
}

func (r *fakeRouter) Enqueue(msg smpp.RoutedMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, msg)
	return nil
}

func (r *fakeRouter) messages() []smpp.RoutedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]smpp.RoutedMessage(nil), r.got...)
}

// readPDU reads exactly one framed PDU off conn.
func readPDU(t *testing.T, conn net.Conn) *smpp.PDU {
	t.Helper()
	var header [4]byte
	if _, err := readFull(conn, header[:]); err != nil {
		t.Fatalf("read length: %v", err)
	}
	length := binary.BigEndian.Uint32(header[:])
	rest := make([]byte, length-4)
	if _, err := readFull(conn, rest); err != nil {
		t.Fatalf("read body: %v", err)
	}
	full := append(header[:], rest...)
	pdu, _, err := smpp.ParsePDU(full)
	if err != nil {
		t.Fatalf("parse pdu: %v", err)
	}
	return pdu
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// TestSubmitSMEndToEnd exercises spec Scenario 1: bind_transceiver, then
// submit_sm, over a real TCP loopback connection.
func TestSubmitSMEndToEnd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	router := &fakeRouter{}
	srv := smpp.NewServer(smpp.Config{
		MaxConnections:   10,
		ThroughputPerSec: 10,
		IdleTimeout:      2 * time.Second,
	}, router)
	go srv.Serve(ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	bindBody := append([]byte("client"), 0, 0, 0, 0, 0, 0, 0, 0)
	bindPDU := &smpp.PDU{CommandID: smpp.CmdBindTransceiver, SequenceNum: 1, Body: bindBody}
	if _, err := conn.Write(bindPDU.MarshalBinary()); err != nil {
		t.Fatalf("write bind: %v", err)
	}

	bindResp := readPDU(t, conn)
	if bindResp.CommandStatus != 0 {
		t.Fatalf("bind_resp status = %#x want 0", bindResp.CommandStatus)
	}
	if bindResp.CommandID != smpp.CmdBindTransceiver|0x80000000 {
		t.Fatalf("bind_resp command id = %#x", bindResp.CommandID)
	}

	var submitBody []byte
	submitBody = append(submitBody, 0, 0)
	submitBody = append(submitBody, '1', '2', '3', 0)
	submitBody = append(submitBody, 0, 0)
	submitBody = append(submitBody, '2', '3', '4', '5', '6', '7', 0)
	submitBody = append(submitBody, 0, 0, 0)
	submitBody = append(submitBody, 0)
	submitBody = append(submitBody, 0)
	submitBody = append(submitBody, 0, 0, 0, 0)
	submitBody = append(submitBody, 5)
	submitBody = append(submitBody, []byte("HELLO")...)

	submitPDU := &smpp.PDU{CommandID: smpp.CmdSubmitSM, SequenceNum: 2, Body: submitBody}
	if _, err := conn.Write(submitPDU.MarshalBinary()); err != nil {
		t.Fatalf("write submit_sm: %v", err)
	}

	submitResp := readPDU(t, conn)
	if submitResp.CommandStatus != 0 {
		t.Fatalf("submit_sm_resp status = %#x want 0", submitResp.CommandStatus)
	}
	msgID, _, err := func() (string, int, error) {
		return parseCString(submitResp.Body)
	}()
	if err != nil || msgID == "" {
		t.Fatalf("submit_sm_resp message_id = %q err=%v", msgID, err)
	}

	deadline := time.Now().Add(time.Second)
	for len(router.messages()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	got := router.messages()
	if len(got) != 1 {
		t.Fatalf("router received %d messages want 1", len(got))
	}
	if got[0].SourceAddr != "123" || got[0].DestAddr != "234567" || string(got[0].Body) != "HELLO" {
		t.Fatalf("routed message = %+v", got[0])
	}
}

func parseCString(b []byte) (string, int, error) {
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), i + 1, nil
		}
	}
	return string(b), len(b), nil
}

// TestSubmitSMBeforeBindRejected exercises the RequireBound guard over the
// wire: a submit_sm before any bind must come back as generic_nack.
func TestSubmitSMBeforeBindRejected(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	srv := smpp.NewServer(smpp.Config{ThroughputPerSec: 10, IdleTimeout: 2 * time.Second}, &fakeRouter{})
	go srv.Serve(ln)

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	pdu := &smpp.PDU{CommandID: smpp.CmdSubmitSM, SequenceNum: 1, Body: []byte{0, 0, '1', 0, 0, 0, '2', 0}}
	if _, err := conn.Write(pdu.MarshalBinary()); err != nil {
		t.Fatalf("write: %v", err)
	}

	resp := readPDU(t, conn)
	if resp.CommandID != smpp.CmdGenericNack {
		t.Fatalf("command id = %#x want generic_nack", resp.CommandID)
	}
	if resp.CommandStatus == 0 {
		t.Fatal("expected non-zero status")
	}
}
