// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Command sigtrand is the composition root: it wires C1..C8 into a running
// process and serves Prometheus metrics alongside the SMPP listener.
package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/sigtrand/sigtrand" // sccp
	"github.com/sigtrand/sigtrand/internal/config"
	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/internal/metrics"
	mapop "github.com/sigtrand/sigtrand/map"
	"github.com/sigtrand/sigtrand/m3ua"
	"github.com/sigtrand/sigtrand/params"
	"github.com/sigtrand/sigtrand/routing"
	"github.com/sigtrand/sigtrand/sctp"
	"github.com/sigtrand/sigtrand/smpp"
	"github.com/sigtrand/sigtrand/tcap"
	"github.com/sigtrand/sigtrand/ussd"
)

const (
	ssnMAP          uint8 = 8
	metricsAddr           = ":9090"
	cleanupInterval       = 30 * time.Second
	ussdSessionTTL        = 180 * time.Second
)

func main() {
	configPath := flag.String("config", "sigtrand.yaml", "path to the YAML configuration file")
	flag.Parse()

	mgr, err := config.NewManager(*configPath)
	if err != nil {
		os.Stderr.WriteString("sigtrand: config load failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	cfg := mgr.Get()

	if err := logging.Init(cfg.Logging); err != nil {
		os.Stderr.WriteString("sigtrand: logging init failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.Get().Component("main")

	go func() {
		log.Info("metrics listener starting", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, metrics.Handler()); err != nil {
			log.Error("metrics listener stopped", err)
		}
	}()

	assoc, err := sctp.Dial(sctp.Config{
		Network:           cfg.SCTP.Network,
		LocalAddress:      cfg.SCTP.LocalAddress,
		RemoteAddress:     cfg.SCTP.RemoteAddress,
		Port:              cfg.SCTP.Port,
		Streams:           cfg.SCTP.Streams,
		HeartbeatInterval: time.Duration(cfg.SCTP.HeartbeatMS) * time.Millisecond,
	})
	if err != nil {
		log.Error("sctp dial failed", err)
		os.Exit(1)
	}

	opTimeout := time.Duration(cfg.M3UA.OperationTimeoutMS) * time.Millisecond
	link := m3ua.NewLink(assoc, cfg.M3UA.NetworkIndicator, opTimeout)
	if err := link.AspUp(); err != nil {
		log.Error("asp up failed", err)
		os.Exit(1)
	}
	if err := link.AspActive(cfg.M3UA.RoutingContexts); err != nil {
		log.Error("asp active failed", err)
		os.Exit(1)
	}
	go func() {
		for {
			if err := link.Recv(); err != nil {
				log.Error("m3ua recv loop stopped", err)
				return
			}
		}
	}()

	sccpEndpoint := sccp.NewEndpoint(link, cfg.M3UA.PointCode, cfg.M3UA.NetworkIndicator)
	go sccpEndpoint.Run()

	ownAddr := params.NewPartyAddress(false, true, true, uint16(cfg.M3UA.PointCode), ssnMAP, nil)
	tcapEngine := tcap.NewEngine(sccpEndpoint, ssnMAP, ownAddr, cfg.M3UA.PeerPointCode)

	// Announce the MAP SSN as in-service to the peer before any inbound
	// dialogue can be routed to it.
	if err := sccpEndpoint.BroadcastSubsystemAllowed(cfg.M3UA.PeerPointCode, ssnMAP); err != nil {
		log.Warn("scmg ssa broadcast failed", "peer", cfg.M3UA.PeerPointCode, "error", err.Error())
	}

	mapTimeout := time.Duration(cfg.MAP.OperationTimeoutMS) * time.Millisecond
	mapEndpoint := mapop.NewEndpoint(tcapEngine, cfg.MAP.HLRGT, cfg.MAP.MSCGT, cfg.MAP.ServiceCentreAddress, mapTimeout)

	seed := routeSeed(cfg.Routes)
	if len(seed) == 0 {
		seed = routing.DefaultSeed()
		log.Info("no routes configured, using built-in defaults")
	}
	routeTable := routing.NewTable(seed)
	routeQueue := routing.NewQueue(1024)
	dispatcher := routing.NewDispatcher(routeTable, routeQueue, routing.DefaultCriteria())

	ussdManager := ussd.NewManager(ussd.NewGraph(ussd.Node{
		ID:      "main",
		Message: "Welcome.",
		Inputs:  map[string]ussd.Transition{},
	}), ussdSessionTTL)
	cleanupDone := make(chan struct{})
	go ussdManager.RunCleanup(cleanupInterval, cleanupDone)
	defer close(cleanupDone)

	go runDeliveryLoop(routeQueue, mapEndpoint, log)

	smppServer := smpp.NewServer(smpp.Config{
		ListenAddr:       cfg.SMPP.Bind,
		MaxConnections:   cfg.SMPP.MaxConnections,
		ThroughputPerSec: cfg.SMPP.PerSessionTPS,
	}, dispatcher)

	ln, err := listenSMPP(cfg.SMPP.Bind)
	if err != nil {
		log.Error("smpp listen failed", err)
		os.Exit(1)
	}

	log.Info("sigtrand started", "smpp_bind", cfg.SMPP.Bind)
	if err := smppServer.Serve(ln); err != nil {
		log.Error("smpp serve stopped", err)
		os.Exit(1)
	}
}

// runDeliveryLoop drains the routing queue and hands each message to the MAP
// layer as an MO-forward-SM toward the resolved MSC — the outbound half of
// §2's "client PDU -> C6 decode -> ... -> C7 route selection -> C5 MAP
// operation -> ... -> C1 frame" data flow.
func runDeliveryLoop(queue *routing.Queue, mapEndpoint *mapop.Endpoint, log *logging.Logger) {
	done := make(chan struct{})
	for {
		msg, ok := queue.Dequeue(done)
		if !ok {
			return
		}
		if err := mapEndpoint.MOForwardSM(msg.Destination, msg.Source, msg.Body); err != nil {
			log.Warn("mo-forward-sm failed", "id", msg.ID, "error", err.Error())
		}
	}
}

func listenSMPP(bind string) (net.Listener, error) {
	if bind == "" {
		bind = ":2775" // §6's "Default listening port 2775"
	}
	return net.Listen("tcp", bind)
}

func routeSeed(routes []config.RouteConfig) []routing.Route {
	out := make([]routing.Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, routing.Route{
			ID:             r.ID,
			CarrierID:      r.CarrierID,
			Connection:     r.ConnectionID,
			Operator:       routing.Operator(r.Operator),
			Priority:       int(r.Priority),
			CostCentiUnits: r.CostCentiUnits,
			QualityScore:   r.QualityScore,
			Active:         r.Active,
			Features: routing.Features{
				SupportsUnicode:       r.SupportsUnicode,
				SupportsFlash:         r.SupportsFlash,
				SupportsConcatenation: r.SupportsConcat,
				MaxSegments:           int(r.MaxSegments),
				SupportsDLR:           r.DeliveryReport,
			},
		})
	}
	return out
}
