// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package smpp

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/xid"

	"github.com/sigtrand/sigtrand/internal/logging"
	"github.com/sigtrand/sigtrand/internal/metrics"
)

// IdleTimeout is the default §6/Scenario-9 exit condition: a bound session
// that emits no PDU (including enquire_link) for this long is closed.
const IdleTimeout = 60 * time.Second

// RoutedMessage is the payload handed from a submit_sm to the C7 routing
// fabric; smpp depends only on this small struct and the Router interface
// below, never on the routing package itself, so the two can be wired
// together by the composition root without an import cycle.
type RoutedMessage struct {
	ID         string
	SourceAddr string
	DestAddr   string
	Body       []byte
}

// Router is implemented by routing.Dispatcher (or a test double) and accepts a
// routed message for dispatch; ErrQueueFull signals back-pressure per §4.7.
type Router interface {
	Enqueue(msg RoutedMessage) error
}

// Config configures a Server.
type Config struct {
	ListenAddr       string
	MaxConnections   int
	ThroughputPerSec int
	IdleTimeout       time.Duration
}

// Server is the C6 SMPP v3.4 server: one handler goroutine per accepted
// connection, bounded by MaxConnections.
type Server struct {
	cfg    Config
	router Router
	log    *logging.Logger

	connCount int32
}

// NewServer constructs a Server that forwards submit_sm PDUs to router.
func NewServer(cfg Config, router Router) *Server {
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = IdleTimeout
	}
	return &Server{cfg: cfg, router: router, log: logging.Get().Component("smpp")}
}

// Serve accepts connections on ln until it is closed or ctx-like cancellation
// is signaled by closing ln from another goroutine (mirroring the teacher's
// Listener.Accept-loop-until-closed shutdown convention).
func (s *Server) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}

		if s.cfg.MaxConnections > 0 && atomic.LoadInt32(&s.connCount) >= int32(s.cfg.MaxConnections) {
			conn.Close()
			continue
		}
		atomic.AddInt32(&s.connCount, 1)

		go func() {
			defer atomic.AddInt32(&s.connCount, -1)
			s.handle(conn)
		}()
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	sess := newSession(xid.New().String(), s.cfg.ThroughputPerSec)
	log := s.log.Component(sess.ID)

	var buf []byte
	readBuf := make([]byte, 4096)

	for {
		conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
		n, err := conn.Read(readBuf)
		if err != nil {
			log.Info("connection closed", "reason", err.Error())
			break
		}
		buf = append(buf, readBuf[:n]...)

		for {
			pdu, consumed, perr := ParsePDU(buf)
			if perr == ErrMalformed {
				log.Warn("malformed pdu, closing connection", "error", perr.Error())
				conn.Write((&PDU{CommandID: CmdGenericNack}).MarshalBinary())
				return
			}
			if perr != nil {
				break // incomplete PDU, wait for more bytes
			}
			buf = buf[consumed:]

			resp, closeAfter := s.dispatch(sess, pdu, log)
			if resp != nil {
				if _, werr := conn.Write(resp.MarshalBinary()); werr != nil {
					log.Warn("write failed", "error", werr.Error())
					return
				}
			}
			if closeAfter {
				return
			}
		}
	}
}

func (s *Server) dispatch(sess *Session, pdu *PDU, log *logging.Logger) (resp *PDU, closeAfter bool) {
	switch pdu.CommandID {
	case CmdBindReceiver, CmdBindTransmitter, CmdBindTransceiver:
		return s.handleBind(sess, pdu), false

	case CmdEnquireLink:
		return &PDU{CommandID: pdu.CommandID | respMask, SequenceNum: pdu.SequenceNum}, false

	case CmdSubmitSM:
		if err := sess.RequireBound("submit_sm"); err != nil {
			return nackFor(pdu, 0x0004), false // ESME_RINVBNDSTS
		}
		return s.handleSubmitSM(sess, pdu, log), false

	case CmdDeliverSM:
		if err := sess.RequireBound("deliver_sm"); err != nil {
			return nackFor(pdu, 0x0004), false
		}
		// Inbound MO/DLR delivery is handed to the application layer by the
		// composition root via the same Router interface; this core only
		// acknowledges receipt at the protocol layer.
		return &PDU{CommandID: pdu.CommandID | respMask, SequenceNum: pdu.SequenceNum}, false

	case CmdUnbind:
		sess.Close()
		metrics.SMPPSessionsActive.Dec()
		return &PDU{CommandID: pdu.CommandID | respMask, SequenceNum: pdu.SequenceNum}, true

	default:
		return nackFor(pdu, 0x0003), false // ESME_RINVCMDID
	}
}

func (s *Server) handleBind(sess *Session, pdu *PDU) *PDU {
	req, err := ParseBindRequest(pdu.Body)
	if err != nil {
		return nackFor(pdu, 0x000A) // ESME_RINVSRCADR-ish generic parse failure
	}

	var target State
	switch pdu.CommandID {
	case CmdBindReceiver:
		target = BindReceiver
	case CmdBindTransmitter:
		target = BindTransmitter
	case CmdBindTransceiver:
		target = BindTransceiver
	}

	if err := sess.Bind(target, req.SystemID); err != nil {
		return nackFor(pdu, 0x0005) // ESME_RALYBND
	}
	metrics.SMPPSessionsActive.Inc()

	return &PDU{
		CommandID:   pdu.CommandID | respMask,
		SequenceNum: pdu.SequenceNum,
		Body:        BindResponse(req.SystemID),
	}
}

func (s *Server) handleSubmitSM(sess *Session, pdu *PDU, log *logging.Logger) *PDU {
	if !sess.Allow() {
		return nackFor(pdu, 0x0058) // ESME_RTHROTTLED
	}

	req, err := ParseSubmitSM(pdu.Body)
	if err != nil {
		log.Warn("submit_sm parse failed", "error", err.Error())
		return nackFor(pdu, 0x000A)
	}

	msgID := xid.New().String()
	msg := RoutedMessage{ID: msgID, SourceAddr: req.SourceAddr, DestAddr: req.DestAddr, Body: req.ShortMessage}
	if err := s.router.Enqueue(msg); err != nil {
		return nackFor(pdu, 0x0014) // ESME_RMSGQFUL
	}

	return &PDU{
		CommandID:   CmdSubmitSM | respMask,
		SequenceNum: pdu.SequenceNum,
		Body:        SubmitSMResponse(msgID),
	}
}

func nackFor(pdu *PDU, status uint32) *PDU {
	return &PDU{CommandID: CmdGenericNack, CommandStatus: status, SequenceNum: pdu.SequenceNum}
}
