// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package ussd_test

import "testing"

func TestGraphNodeLookup(t *testing.T) {
	g := testGraph()
	if _, ok := g.Node("main"); !ok {
		t.Fatal("expected main node to exist")
	}
	if _, ok := g.Node("nonexistent"); ok {
		t.Fatal("expected lookup of an undefined menu to fail")
	}
}
