// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package routing

// DefaultSeed returns one primary route per major Nigerian operator,
// matching the shape (not the hardcoding) of the original reference's
// built-in MTN/Airtel/Glo/9mobile defaults — this core's composition root
// loads the equivalent from YAML config instead; DefaultSeed exists for
// tests and as a documented fallback when no config is supplied.
func DefaultSeed() []Route {
	return []Route{
		{
			ID: "mtn-primary", CarrierID: "mtn-ng", Connection: "smpp-mtn-1",
			Operator: OperatorMTN, Priority: 1, CostCentiUnits: 250, QualityScore: 0.95,
			Active: true,
			Features: Features{SupportsUnicode: true, SupportsFlash: true, SupportsConcatenation: true, MaxSegments: 10, SupportsDLR: true},
		},
		{
			ID: "airtel-primary", CarrierID: "airtel-ng", Connection: "smpp-airtel-1",
			Operator: OperatorAirtel, Priority: 1, CostCentiUnits: 250, QualityScore: 0.92,
			Active: true,
			Features: Features{SupportsUnicode: true, SupportsConcatenation: true, MaxSegments: 8, SupportsDLR: true},
		},
		{
			ID: "glo-primary", CarrierID: "glo-ng", Connection: "smpp-glo-1",
			Operator: OperatorGlo, Priority: 1, CostCentiUnits: 200, QualityScore: 0.88,
			Active: true,
			Features: Features{SupportsUnicode: true, SupportsConcatenation: true, MaxSegments: 6, SupportsDLR: true},
		},
		{
			ID: "9mobile-primary", CarrierID: "9mobile-ng", Connection: "smpp-9mobile-1",
			Operator: OperatorNineMobile, Priority: 1, CostCentiUnits: 220, QualityScore: 0.85,
			Active: true,
			Features: Features{SupportsUnicode: true, SupportsConcatenation: true, MaxSegments: 5, SupportsDLR: true},
		},
	}
}
