// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package routing_test

import (
	"testing"

	"github.com/sigtrand/sigtrand/routing"
)

func TestSelectRouteScoresAndPicksBest(t *testing.T) {
	table := routing.NewTable([]routing.Route{
		{
			ID: "cheap-low-quality", Operator: routing.OperatorMTN, Active: true,
			Priority: 2, CostCentiUnits: 50, QualityScore: 0.5,
			Features: routing.Features{SupportsDLR: true, MaxSegments: 3},
		},
		{
			ID: "expensive-high-quality", Operator: routing.OperatorMTN, Active: true,
			Priority: 1, CostCentiUnits: 500, QualityScore: 0.99,
			Features: routing.Features{SupportsDLR: true, MaxSegments: 3},
		},
	})

	got, ok := routing.SelectRoute(table, "08031234567", routing.DefaultCriteria())
	if !ok {
		t.Fatal("expected a route")
	}
	if got.ID != "expensive-high-quality" {
		t.Fatalf("got %q, want expensive-high-quality (quality_weight=0.7 dominates)", got.ID)
	}
}

func TestSelectRouteFiltersInactiveAndMissingFeatures(t *testing.T) {
	table := routing.NewTable([]routing.Route{
		{ID: "inactive", Operator: routing.OperatorGlo, Active: false, QualityScore: 1, Features: routing.Features{SupportsDLR: true}},
		{ID: "no-dlr", Operator: routing.OperatorGlo, Active: true, QualityScore: 1, Features: routing.Features{SupportsDLR: false}},
		{ID: "eligible", Operator: routing.OperatorGlo, Active: true, QualityScore: 0.5, Features: routing.Features{SupportsDLR: true, MaxSegments: 2}},
	})

	got, ok := routing.SelectRoute(table, "08051234567", routing.Criteria{CostWeight: 0.3, QualityWeight: 0.7, RequireDLR: true})
	if !ok {
		t.Fatal("expected a route")
	}
	if got.ID != "eligible" {
		t.Fatalf("got %q, want eligible", got.ID)
	}
}

func TestSelectRouteNoneEligible(t *testing.T) {
	table := routing.NewTable(routing.DefaultSeed())
	_, ok := routing.SelectRoute(table, "09991234567", routing.DefaultCriteria())
	if ok {
		t.Fatal("expected no route for an unclassified operator")
	}
}

func TestSelectRouteTieBreakByPriorityThenInsertionOrder(t *testing.T) {
	table := routing.NewTable([]routing.Route{
		{ID: "first", Operator: routing.OperatorAirtel, Active: true, Priority: 5, QualityScore: 0.5, CostCentiUnits: 100},
		{ID: "second-same-priority", Operator: routing.OperatorAirtel, Active: true, Priority: 5, QualityScore: 0.5, CostCentiUnits: 100},
		{ID: "lower-priority", Operator: routing.OperatorAirtel, Active: true, Priority: 1, QualityScore: 0.5, CostCentiUnits: 100},
	})

	got, ok := routing.SelectRoute(table, "08021234567", routing.DefaultCriteria())
	if !ok {
		t.Fatal("expected a route")
	}
	if got.ID != "lower-priority" {
		t.Fatalf("got %q, want lower-priority (ties broken by lower priority number)", got.ID)
	}
}

func TestSelectRouteRejectsShortSegmentCap(t *testing.T) {
	table := routing.NewTable([]routing.Route{
		{ID: "single-segment", Operator: routing.OperatorMTN, Active: true, QualityScore: 0.9, Features: routing.Features{MaxSegments: 1}},
	})

	_, ok := routing.SelectRoute(table, "08031234567", routing.Criteria{CostWeight: 0.3, QualityWeight: 0.7, Segments: 3})
	if ok {
		t.Fatal("expected no route when the only candidate's MaxSegments is below the required segment count")
	}
}
