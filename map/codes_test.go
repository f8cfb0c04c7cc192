// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package mapop_test

import (
	"testing"

	mapop "github.com/sigtrand/sigtrand/map"
)

func TestOperationName(t *testing.T) {
	if got := mapop.OperationName(mapop.OpSendRoutingInfoForSM); got != "SendRoutingInfoForSM" {
		t.Fatalf("got %q", got)
	}
	if got := mapop.OperationName(9999); got != "Operation_9999" {
		t.Fatalf("unknown code got %q", got)
	}
}

func TestErrorName(t *testing.T) {
	if got := mapop.ErrorName(1); got != "Unknown Subscriber" {
		t.Fatalf("got %q", got)
	}
	if got := mapop.ErrorName(9999); got != "Error_9999" {
		t.Fatalf("unknown code got %q", got)
	}
}
