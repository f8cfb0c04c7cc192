// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package smpp_test

import (
	"bytes"
	"testing"

	"github.com/sigtrand/sigtrand/smpp"
)

func TestPDURoundTrip(t *testing.T) {
	p := &smpp.PDU{CommandID: smpp.CmdEnquireLink, SequenceNum: 7}
	b := p.MarshalBinary()

	got, n, err := smpp.ParsePDU(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n != len(b) {
		t.Fatalf("consumed %d want %d", n, len(b))
	}
	if got.CommandID != smpp.CmdEnquireLink || got.SequenceNum != 7 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseBindRequest(t *testing.T) {
	body := append([]byte("client"), 0, 'p', 'w', 0, 0, 0, 0, 0, 0, 0)
	req, err := smpp.ParseBindRequest(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.SystemID != "client" {
		t.Fatalf("got %q want %q", req.SystemID, "client")
	}
}

func TestParseSubmitSM(t *testing.T) {
	var body []byte
	body = append(body, 0, 0) // source ton/npi
	body = append(body, '1', '2', '3', 0)
	body = append(body, 0, 0) // dest ton/npi
	body = append(body, '2', '3', '4', '5', '6', '7', 0)
	body = append(body, 0, 0, 0) // esm_class, protocol_id, priority_flag
	body = append(body, 0)       // schedule_delivery_time (empty c-string)
	body = append(body, 0)       // validity_period (empty c-string)
	body = append(body, 0, 0, 0, 0) // registered_delivery, replace_if_present_flag, data_coding, sm_default_msg_id
	body = append(body, 5)          // sm_length
	body = append(body, []byte("HELLO")...)

	req, err := smpp.ParseSubmitSM(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.SourceAddr != "123" || req.DestAddr != "234567" {
		t.Fatalf("got %+v", req)
	}
	if !bytes.Equal(req.ShortMessage, []byte("HELLO")) {
		t.Fatalf("got message %q", req.ShortMessage)
	}
}
