// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop

import "fmt"

// operationNames maps a MAP operation code to its 3GPP TS 29.002 name, for
// structured logging only — never consulted by the encode/decode path above.
var operationNames = map[int32]string{
	2:  "UpdateLocation",
	3:  "CancelLocation",
	4:  "ProvideRoamingNumber",
	5:  "InsertSubscriberData",
	6:  "DeleteSubscriberData",
	7:  "SendParameters",
	8:  "RegisterSS",
	9:  "EraseSS",
	10: "ActivateSS",
	11: "DeactivateSS",
	12: "InterrogateSS",
	22: "SendRoutingInfo",
	23: "UpdateGprsLocation",
	24: "SendAuthenticationInfo",
	25: "RestoreData",
	OpMTForwardSM:                  "MtForwardSM",
	OpSendRoutingInfoForSM:         "SendRoutingInfoForSM",
	OpMOForwardSM:                  "MoForwardSM",
	OpProcessUnstructuredSSRequest: "ProcessUnstructuredSSRequest",
	OpUnstructuredSSRequest:        "UnstructuredSSRequest",
	OpUnstructuredSSNotify:         "UnstructuredSSNotify",
}

// errorNames maps a MAP local error code to its 3GPP TS 29.002 text.
var errorNames = map[int32]string{
	1:  "Unknown Subscriber",
	3:  "Unknown MSC",
	4:  "Unidentified Subscriber",
	5:  "Absent Subscriber SM",
	6:  "Unknown Equipment",
	7:  "Roaming Not Allowed",
	8:  "Illegal Subscriber",
	9:  "Bearer Service Not Provisioned",
	10: "Teleservice Not Provisioned",
	11: "Illegal Equipment",
	12: "Call Barred",
	21: "Facility Not Supported",
	27: "Absent Subscriber",
	34: "System Failure",
	35: "Data Missing",
	36: "Unexpected Data Value",
}

// OperationName returns the 3GPP operation name for code, or a placeholder
// if code is not one this core recognizes.
func OperationName(code int32) string {
	if name, ok := operationNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Operation_%d", code)
}

// ErrorName returns the 3GPP error text for code, or a placeholder if code
// is not one this core recognizes.
func ErrorName(code int32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Error_%d", code)
}
