// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package tcap

import "github.com/pkg/errors"

const tagOID byte = 0x06

// MsgKind discriminates the TCAP Message sum type.
type MsgKind uint8

const (
	KindBegin MsgKind = iota
	KindContinue
	KindEnd
	KindAbort
)

// AbortCause is the decoded p-abort-cause of an Abort message. The source
// implementation hard-codes UnrecognizedTransactionID regardless of the
// wire value; this implementation decodes the actual integer (Open Question).
type AbortCause int32

const (
	AbortUnrecognizedTransactionID AbortCause = 0
	AbortBadlyFormattedTransactionPortion AbortCause = 1
	AbortIncorrectTransactionPortion AbortCause = 2
	AbortResourceLimitation AbortCause = 3
)

// Message is a decoded/to-be-encoded TCAP Begin/Continue/End/Abort.
type Message struct {
	Kind MsgKind

	OTID []byte // present on Begin, Continue
	DTID []byte // present on Continue, End

	AppContext []uint32 // dialogue portion OID, optional

	Components []*Component

	AbortCause *AbortCause // Abort only
}

// MarshalBinary encodes the Message as its full outer TLV.
func (m *Message) MarshalBinary() []byte {
	var body []byte
	var tag byte

	switch m.Kind {
	case KindBegin:
		tag = TagBegin
		body = append(body, encodeTLV(TagOTID, m.OTID)...)
	case KindContinue:
		tag = TagContinue
		body = append(body, encodeTLV(TagOTID, m.OTID)...)
		body = append(body, encodeTLV(TagDTID, m.DTID)...)
	case KindEnd:
		tag = TagEnd
		body = append(body, encodeTLV(TagDTID, m.DTID)...)
	case KindAbort:
		tag = TagAbort
		body = append(body, encodeTLV(TagDTID, m.DTID)...)
		if m.AbortCause != nil {
			// p-abort-cause: context tag [0] universal INTEGER, ASN.1 ABORT source.
			body = append(body, encodeTLV(0xA0, encodeTLV(0x02, encodeInt(int32(*m.AbortCause))))...)
		}
		return encodeTLV(tag, body)
	}

	if len(m.AppContext) > 0 {
		oid := encodeTLV(tagOID, EncodeOID(m.AppContext))
		ext := encodeTLV(tagExternal, oid)
		body = append(body, encodeTLV(TagDialoguePortion, ext)...)
	}

	if len(m.Components) > 0 {
		var comps []byte
		for _, c := range m.Components {
			comps = append(comps, c.MarshalBinary()...)
		}
		body = append(body, encodeTLV(TagComponentPortion, comps)...)
	}

	return encodeTLV(tag, body)
}

// Parse decodes a full TCAP Message from its outer TLV.
func Parse(b []byte) (*Message, error) {
	el, n, err := parseTLV(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, errors.New("tcap: trailing bytes after message")
	}

	m := &Message{}
	switch el.Tag {
	case TagBegin:
		m.Kind = KindBegin
	case TagContinue:
		m.Kind = KindContinue
	case TagEnd:
		m.Kind = KindEnd
	case TagAbort:
		m.Kind = KindAbort
	default:
		return nil, errors.Errorf("tcap: unknown top-level tag %#02x", el.Tag)
	}

	if e := find(el.Children, TagOTID); e != nil {
		m.OTID = e.Value
	}
	if e := find(el.Children, TagDTID); e != nil {
		m.DTID = e.Value
	}

	if m.Kind == KindAbort {
		if e := find(el.Children, 0xA0); e != nil {
			if inner := find(e.Children, 0x02); inner != nil {
				c := AbortCause(decodeInt(inner.Value))
				m.AbortCause = &c
			} else if len(e.Value) > 0 {
				// short-form primitive fallback when not decoded as constructed
				c := AbortCause(decodeInt(e.Value))
				m.AbortCause = &c
			}
		}
		return m, nil
	}

	if dp := find(el.Children, TagDialoguePortion); dp != nil {
		if ext := find(dp.Children, tagExternal); ext != nil {
			if oid := find(ext.Children, tagOID); oid != nil {
				m.AppContext = DecodeOID(oid.Value)
			}
		}
	}

	if cp := find(el.Children, TagComponentPortion); cp != nil {
		for _, ce := range cp.Children {
			c, err := ParseComponent(ce)
			if err != nil {
				return nil, err
			}
			m.Components = append(m.Components, c)
		}
	}

	return m, nil
}
