// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package sccp

import (
	"fmt"
	"io"

	"github.com/sigtrand/sigtrand/params"
)

// RLC is the SCCP Release Complete message: the peer's acknowledgement that
// a connection-oriented dialogue has been torn down.
type RLC struct {
	Type                      MsgType
	DestinationLocalReference params.LocalReference
	SourceLocalReference      params.LocalReference
}

// NewRLC creates a new RLC.
func NewRLC(dlr, slr params.LocalReference) *RLC {
	return &RLC{Type: MsgTypeRLC, DestinationLocalReference: dlr, SourceLocalReference: slr}
}

// ParseRLC decodes given byte sequence as a SCCP RLC.
func ParseRLC(b []byte) (*RLC, error) {
	msg := &RLC{}
	if err := msg.UnmarshalBinary(b); err != nil {
		return nil, err
	}

	return msg, nil
}

// UnmarshalBinary sets the values retrieved from byte sequence in a RLC.
func (msg *RLC) UnmarshalBinary(b []byte) error {
	if len(b) != 7 {
		return io.ErrUnexpectedEOF
	}

	msg.Type = MsgType(b[0])

	var err error
	if msg.DestinationLocalReference, err = params.ParseLocalReference(b[1:4]); err != nil {
		return err
	}
	msg.SourceLocalReference, err = params.ParseLocalReference(b[4:7])
	return err
}

// MarshalBinary returns the byte sequence generated from a RLC instance.
func (msg *RLC) MarshalBinary() ([]byte, error) {
	b := make([]byte, msg.MarshalLen())
	if err := msg.MarshalTo(b); err != nil {
		return nil, err
	}

	return b, nil
}

// MarshalLen returns the serial length.
func (msg *RLC) MarshalLen() int {
	return 7
}

// MarshalTo puts the byte sequence in the byte array given as b.
func (msg *RLC) MarshalTo(b []byte) error {
	if len(b) < msg.MarshalLen() {
		return io.ErrUnexpectedEOF
	}
	b[0] = uint8(msg.Type)
	copy(b[1:4], msg.DestinationLocalReference.Bytes())
	copy(b[4:7], msg.SourceLocalReference.Bytes())
	return nil
}

// String returns the RLC values in human readable format.
func (msg *RLC) String() string {
	return fmt.Sprintf("{Type: RLC, DestinationLocalReference: %s, SourceLocalReference: %s}",
		msg.DestinationLocalReference, msg.SourceLocalReference)
}

// MessageType returns the Message Type in int.
func (msg *RLC) MessageType() MsgType {
	return msg.Type
}

// MessageTypeName returns the Message Type in string.
func (msg *RLC) MessageTypeName() string {
	return "RLC"
}
