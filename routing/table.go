// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package routing

import "sync"

// Features is a route's supported-capability bitset (§4.7's "feature bits").
type Features struct {
	SupportsUnicode       bool
	SupportsFlash         bool
	SupportsConcatenation bool
	MaxSegments           int
	SupportsDLR           bool
}

// Route is one outbound path to an operator's network.
type Route struct {
	ID             string
	CarrierID      string
	Connection     string
	Operator       Operator
	Priority       int   // lower = tried first on a tie
	CostCentiUnits int64 // cost per message, hundredths of a currency unit
	QualityScore   float64
	Active         bool
	Features       Features

	seq int // insertion order, for the final stable tie-break
}

// Criteria parameterizes SelectRoute's scoring and filtering.
type Criteria struct {
	CostWeight     float64
	QualityWeight  float64
	RequireDLR     bool
	RequireUnicode bool
	Segments       int
}

// DefaultCriteria matches §4.7's "defaults: 0.3/0.7".
func DefaultCriteria() Criteria {
	return Criteria{CostWeight: 0.3, QualityWeight: 0.7}
}

// Table is the route table keyed by operator classification, guarded by a
// single RWMutex per §5's "concurrent hash maps with per-key exclusive
// writers" — a table-wide lock rather than per-key, since routes are
// re-seeded as whole operator buckets, not updated key-by-key.
type Table struct {
	mu     sync.RWMutex
	routes map[Operator][]*Route
	nextSeq int
}

// NewTable builds a Table, optionally seeded with initial routes (typically
// loaded from the composition root's YAML `routes:` config section rather
// than compiled in, per SPEC_FULL.md's per-operator seeding note).
func NewTable(seed []Route) *Table {
	t := &Table{routes: make(map[Operator][]*Route)}
	for _, r := range seed {
		r := r
		t.AddRoute(r)
	}
	return t
}

// AddRoute appends a route to its operator's bucket, stamping it with the
// next insertion-order sequence number for SelectRoute's tie-break.
func (t *Table) AddRoute(r Route) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r.seq = t.nextSeq
	t.nextSeq++
	rp := r
	t.routes[r.Operator] = append(t.routes[r.Operator], &rp)
}

// Routes returns a snapshot of the routes registered for op.
func (t *Table) Routes(op Operator) []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Route, len(t.routes[op]))
	for i, r := range t.routes[op] {
		out[i] = *r
	}
	return out
}

// SelectRoute implements §4.7's selection algorithm: classify, filter by
// active/feature requirements, score, and pick the maximum, breaking ties by
// lower priority then stable insertion order.
func SelectRoute(t *Table, destination string, criteria Criteria) (*Route, bool) {
	op := ClassifyOperator(destination)

	t.mu.RLock()
	candidates := t.routes[op]
	eligible := make([]*Route, 0, len(candidates))
	for _, r := range candidates {
		if !r.Active {
			continue
		}
		if criteria.RequireDLR && !r.Features.SupportsDLR {
			continue
		}
		if criteria.RequireUnicode && !r.Features.SupportsUnicode {
			continue
		}
		if criteria.Segments > r.Features.MaxSegments {
			continue
		}
		eligible = append(eligible, r)
	}
	t.mu.RUnlock()

	if len(eligible) == 0 {
		return nil, false
	}

	best := eligible[0]
	bestScore := score(best, criteria)
	for _, r := range eligible[1:] {
		s := score(r, criteria)
		switch {
		case s > bestScore:
			best, bestScore = r, s
		case s == bestScore && (r.Priority < best.Priority ||
			(r.Priority == best.Priority && r.seq < best.seq)):
			best, bestScore = r, s
		}
	}

	out := *best
	return &out, true
}

func score(r *Route, c Criteria) float64 {
	costScore := 1.0 / (1.0 + float64(r.CostCentiUnits)/100.0)
	return c.CostWeight*costScore + c.QualityWeight*r.QualityScore
}
