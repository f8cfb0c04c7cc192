// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package sccp

import "github.com/sigtrand/sigtrand/params"

// ssnManagement is the subsystem number reserved for SCCP management (SCMG),
// Table 1/Q.713.
const ssnManagement uint8 = 1

// BroadcastSubsystemAllowed announces ssn as available to dpc by sending an
// SCMG SSA, the connectionless management counterpart to the UDT/XUDT data
// path that Endpoint otherwise carries -- per §2's data flow, a point code
// coming into service announces the SSNs it now serves before any MAP
// dialogue can be routed to it.
func (e *Endpoint) BroadcastSubsystemAllowed(dpc uint32, ssn uint8) error {
	scmg := NewSCMG(SCMGTypeSSA, ssn, uint16(e.opc), 0, 0)
	b, err := scmg.MarshalBinary()
	if err != nil {
		return err
	}

	mgmt := NewUDT(1, true,
		&udtManagementAddress,
		&udtManagementAddress,
		b,
	)
	enc, err := mgmt.MarshalBinary()
	if err != nil {
		return err
	}
	return e.link.SendData(e.opc, dpc, serviceIndicatorSCCP, e.ni, 0, 0, enc)
}

// udtManagementAddress is the party address SCMG traffic is addressed
// to/from: SSN present, routed on SSN, point code carried separately in the
// M3UA routing label rather than the SCCP address itself.
var udtManagementAddress = func() params.PartyAddress {
	return *params.NewPartyAddress(true, false, true, 0, ssnManagement, nil)
}()

// handleManagement logs inbound SCMG traffic delivered to the management
// SSN. Endpoint does not itself act as a concentrator/backup, so a peer's
// subsystem-prohibited/allowed broadcast is observed, not acted on.
func (e *Endpoint) handleManagement(_ *params.PartyAddress, data []byte) {
	scmg, err := ParseSCMG(data)
	if err != nil {
		e.log.Warn("failed to parse scmg management message", "error", err.Error())
		return
	}
	e.log.Info("scmg management message received",
		"type", scmg.MessageTypeName(), "affected_ssn", scmg.AffectedSSN, "affected_pc", scmg.AffectedPC)
}
