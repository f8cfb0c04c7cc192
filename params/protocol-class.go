// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package params

// ProtocolClass is a Protocol Class SCCP parameter (Q.713 3.6): the low
// nibble carries the class number (0/1 for connectionless), bit 7 carries
// the "return message on error" option.
type ProtocolClass uint8

// NewProtocolClass creates a new ProtocolClass. retOnErr sets the
// return-message-on-error option bit.
func NewProtocolClass(cls int, retOnErr bool) ProtocolClass {
	if retOnErr {
		return ProtocolClass(cls | 0x80)
	}
	return ProtocolClass(cls)
}

// Class returns the class part from ProtocolClass parameter.
func (p ProtocolClass) Class() int {
	return int(p) & 0x0f
}

// ReturnOnError judges if ProtocolClass has "Return Message On Error" option.
func (p ProtocolClass) ReturnOnError() bool {
	return (p>>7)&0x1 == 1
}

// Write serializes ProtocolClass into b, matching the Read/Write pattern
// used by the other connectionless-path parameters (HopCounter, Data, ...).
func (p *ProtocolClass) Write(b []byte) (int, error) {
	if len(b) < 1 {
		return 0, ErrTooShortToSerialize
	}
	b[0] = uint8(*p)
	return 1, nil
}

// Read decodes a ProtocolClass from b.
func (p *ProtocolClass) Read(b []byte) (int, error) {
	if len(b) < 1 {
		return 0, ErrTooShortToDecode
	}
	*p = ProtocolClass(b[0])
	return 1, nil
}

// String returns the ProtocolClass in human readable format.
func (p ProtocolClass) String() string {
	if p.ReturnOnError() {
		return "Class " + itoa(p.Class()) + " (return on error)"
	}
	return "Class " + itoa(p.Class())
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [4]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}
