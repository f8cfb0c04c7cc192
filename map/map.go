// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/params"
	"github.com/sigtrand/sigtrand/tcap"
	"github.com/sigtrand/sigtrand/utils"
)

// Operation codes (3GPP TS 29.002, §4.5).
const (
	OpMTForwardSM                  int32 = 44
	OpSendRoutingInfoForSM         int32 = 45
	OpMOForwardSM                  int32 = 46
	OpProcessUnstructuredSSRequest int32 = 59
	OpUnstructuredSSRequest        int32 = 60
	OpUnstructuredSSNotify         int32 = 61
)

// Subsystem numbers used when addressing HLR/MSC/SMS-GMSC peers.
const (
	SSNHLR     uint8 = 6
	SSNMSC     uint8 = 8
	SSNSMSGMSC uint8 = 6
)

// ErrSystemFailure is returned when no result is ever observed for a dialogue.
var ErrSystemFailure = errors.New("mapop: system failure")

// OperationError wraps a peer ReturnError's numeric error code.
type OperationError struct{ Code int32 }

func (e *OperationError) Error() string {
	return errors.Errorf("mapop: %s (%d)", ErrorName(e.Code), e.Code).Error()
}

// RoutingInfo is the result of SendRoutingInfoForSM.
type RoutingInfo struct {
	IMSI      string
	MSCNumber string
	LMSI      []byte
}

// UssdResponse is the result of ProcessUSSD.
type UssdResponse struct {
	DCS  byte
	Text string
}

// Endpoint is the C5 MAP operation layer: it marshals operation parameters
// into TCAP Invoke bodies, drives Begin/await-result dialogues through a
// tcap.Engine, and owns only the next-invoke-id counter and addressing
// configuration -- per the spec's ownership model, the TCAP and SCCP
// endpoints themselves are shared, not owned, references.
type Endpoint struct {
	engine *tcap.Engine

	hlrAddr, mscAddr, scAddr *params.PartyAddress

	operationTimeout time.Duration
	invokeCounter    int32

	log *logging.Logger
}

// NewEndpoint constructs a MAP Endpoint. hlrGT/mscGT/serviceCentreAddress are
// E.164 digit strings wrapped in a GTI=4 Global Title with NP=ISDN/Telephony
// and NAI=international, per §4.5 addressing.
func NewEndpoint(engine *tcap.Engine, hlrGT, mscGT, serviceCentreAddress string, operationTimeout time.Duration) *Endpoint {
	return &Endpoint{
		engine:           engine,
		hlrAddr:          buildAddr(SSNHLR, hlrGT),
		mscAddr:          buildAddr(SSNMSC, mscGT),
		scAddr:           buildAddr(SSNSMSGMSC, serviceCentreAddress),
		operationTimeout: operationTimeout,
		log:              logging.Get().Component("map"),
	}
}

func buildAddr(ssn uint8, digits string) *params.PartyAddress {
	gt := params.NewGlobalTitle(params.GTITTNPESNAI, 0, params.NPISDNTelephony, params.NAIInternationalNumber, digits)
	return params.NewPartyAddress(false, false, true, 0, ssn, gt)
}

func (e *Endpoint) nextInvokeID() int32 {
	return atomic.AddInt32(&e.invokeCounter, 1) & 0x7F
}

// awaitResult waits for the dialogue's End/Continue/Abort within
// operation_timeout, returning the single ReturnResultLast/ReturnError
// component for a one-round operation.
func (e *Endpoint) awaitResult(otid []byte) (*tcap.Component, error) {
	select {
	case ev := <-e.engine.AwaitDialogue(otid):
		if ev.Msg.Kind == tcap.KindAbort {
			return nil, ErrSystemFailure
		}
		if len(ev.Msg.Components) == 0 {
			return nil, ErrSystemFailure
		}
		c := ev.Msg.Components[0]
		if c.Kind == tcap.KindReturnError {
			e.log.Warn("operation returned error", "code", c.ErrorCode, "name", ErrorName(c.ErrorCode))
			return nil, &OperationError{Code: c.ErrorCode}
		}
		if c.OpCode != nil {
			e.log.Debug("operation result", "op", OperationName(*c.OpCode))
		}
		return c, nil
	case <-time.After(e.operationTimeout):
		return nil, errors.New("mapop: operation_timeout elapsed")
	}
}

// SendRoutingInfoForSM resolves msisdn to its serving MSC via the HLR.
func (e *Endpoint) SendRoutingInfoForSM(msisdn string) (*RoutingInfo, error) {
	body := encodeSequence(
		taggedOctetString(0, utils.EncodeTBCDAddress(msisdn)),
		taggedBoolean(1, true), // sm-RP-PRI
		taggedOctetString(2, utils.EncodeTBCDAddress(e.serviceCentreDigits())),
	)

	invID := e.nextInvokeID()
	otid, err := e.engine.Begin(e.hlrAddr, tcap.ShortMsgGatewayContextV3, []*tcap.Component{
		tcap.NewInvoke(invID, nil, OpSendRoutingInfoForSM, body),
	})
	if err != nil {
		return nil, errors.Wrap(err, "mapop: SendRoutingInfoForSM begin failed")
	}

	c, err := e.awaitResult(otid)
	if err != nil {
		return nil, err
	}

	return parseRoutingInfoResult(c.Parameter)
}

func (e *Endpoint) serviceCentreDigits() string {
	return e.scAddr.GTString()
}

// MOForwardSM relays a mobile-originated SMS TPDU to destination via the
// SMS-GMSC/MSC resolved address.
func (e *Endpoint) MOForwardSM(destination, originator string, tpdu []byte) error {
	body := encodeSequence(
		taggedOctetString(0, utils.EncodeTBCDAddress(destination)), // SM-RP-DA
		taggedOctetString(1, utils.EncodeTBCDAddress(originator)),  // SM-RP-OA
		taggedOctetString(2, tpdu),                          // SM-RP-UI
	)

	invID := e.nextInvokeID()
	otid, err := e.engine.Begin(e.mscAddr, tcap.ShortMsgRelayContextV3, []*tcap.Component{
		tcap.NewInvoke(invID, nil, OpMOForwardSM, body),
	})
	if err != nil {
		return errors.Wrap(err, "mapop: MOForwardSM begin failed")
	}

	_, err = e.awaitResult(otid)
	return err
}

// MTForwardSM first resolves msisdn's serving MSC via SendRoutingInfoForSM,
// then Begins against that MSC.
func (e *Endpoint) MTForwardSM(msisdn string, moreMessagesToSend bool, tpdu []byte) error {
	ri, err := e.SendRoutingInfoForSM(msisdn)
	if err != nil {
		return errors.Wrap(err, "mapop: MTForwardSM routing lookup failed")
	}

	body := encodeSequence(
		taggedOctetString(0, utils.EncodeTBCDAddress(e.serviceCentreDigits())),
		taggedOctetString(1, utils.EncodeTBCDAddress(msisdn)),
		taggedOctetString(2, tpdu),
	)
	if moreMessagesToSend {
		body = append(body, taggedBoolean(3, true)...)
	}

	invID := e.nextInvokeID()
	mscAddrForResult := buildAddr(SSNMSC, ri.MSCNumber)
	otid, err := e.engine.Begin(mscAddrForResult, tcap.ShortMsgRelayContextV3, []*tcap.Component{
		tcap.NewInvoke(invID, nil, OpMTForwardSM, body),
	})
	if err != nil {
		return errors.Wrap(err, "mapop: MTForwardSM begin failed")
	}

	_, err = e.awaitResult(otid)
	return err
}

// ProcessUSSD performs a network-initiated USSD request/response round trip.
func (e *Endpoint) ProcessUSSD(msisdn, text string, dcs byte) (*UssdResponse, error) {
	encoded, err := EncodeUserData(text, dcs)
	if err != nil {
		return nil, err
	}

	body := encodeSequence(
		taggedInteger(0, int32(dcs)),
		taggedOctetString(1, encoded),
	)
	if msisdn != "" {
		body = append(body, taggedOctetString(3, utils.EncodeTBCDAddress(msisdn))...)
	}

	invID := e.nextInvokeID()
	otid, err := e.engine.Begin(e.hlrAddr, tcap.NetworkUnstructuredSsContextV2, []*tcap.Component{
		tcap.NewInvoke(invID, nil, OpProcessUnstructuredSSRequest, body),
	})
	if err != nil {
		return nil, errors.Wrap(err, "mapop: ProcessUSSD begin failed")
	}

	c, err := e.awaitResult(otid)
	if err != nil {
		return nil, err
	}

	return parseUssdResult(c.Parameter)
}

// SendUSSD is fire-and-forget: it Begins the dialogue but does not await a result.
func (e *Endpoint) SendUSSD(msisdn, text string, dcs byte) error {
	return e.fireAndForget(msisdn, text, dcs, OpUnstructuredSSRequest)
}

// UssdNotify is fire-and-forget, like SendUSSD but with op code 61.
func (e *Endpoint) UssdNotify(msisdn, text string, dcs byte) error {
	return e.fireAndForget(msisdn, text, dcs, OpUnstructuredSSNotify)
}

func (e *Endpoint) fireAndForget(msisdn, text string, dcs byte, opCode int32) error {
	encoded, err := EncodeUserData(text, dcs)
	if err != nil {
		return err
	}
	body := encodeSequence(taggedInteger(0, int32(dcs)), taggedOctetString(1, encoded))
	if msisdn != "" {
		body = append(body, taggedOctetString(3, utils.EncodeTBCDAddress(msisdn))...)
	}

	invID := e.nextInvokeID()
	_, err = e.engine.Begin(e.hlrAddr, tcap.NetworkUnstructuredSsContextV2, []*tcap.Component{
		tcap.NewInvoke(invID, nil, opCode, body),
	})
	return err
}
