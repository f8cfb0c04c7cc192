// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package metrics exposes Prometheus gauges/counters for the protocol
// components, served over a dedicated metrics listener (mirroring the
// promhttp wiring in the runZeroInc tcpinfo exporters).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AssociationState is a gauge for the C1 Association state ordinal
// (0=Closed .. 7=ShutdownAckSent, matching the Association.State ordinal).
// The sctp package does not set it, so it stays at 0.
var AssociationState = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sigtran",
	Subsystem: "sctp",
	Name:      "association_state",
	Help:      "Current transport association state ordinal.",
})

// ASPState reports the current C2 ASP state (0=Down, 1=Inactive, 2=Active).
var ASPState = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sigtran",
	Subsystem: "m3ua",
	Name:      "asp_state",
	Help:      "Current M3UA ASP state ordinal.",
})

// SMPPSessionsActive counts currently bound SMPP sessions.
var SMPPSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sigtran",
	Subsystem: "smpp",
	Name:      "sessions_active",
	Help:      "Number of currently bound SMPP sessions.",
})

// USSDSessionsActive counts live USSD sessions.
var USSDSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sigtran",
	Subsystem: "ussd",
	Name:      "sessions_active",
	Help:      "Number of active USSD sessions.",
})

// USSDSessionsTotal counts lifecycle transitions of USSD sessions by outcome.
var USSDSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sigtran",
	Subsystem: "ussd",
	Name:      "sessions_total",
	Help:      "USSD sessions counted by terminal outcome.",
}, []string{"outcome"})

// RouteQueueDepth reports the current depth of the outbound routing queue.
var RouteQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sigtran",
	Subsystem: "routing",
	Name:      "queue_depth",
	Help:      "Number of routed messages currently queued for dispatch.",
})

// Handler returns the promhttp handler for the metrics listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
