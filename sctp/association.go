// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package sctp provides the transport association (C1): a reliable,
// ordered, multi-stream byte channel carrying M3UA. When configured with
// network "sctp" it rides a real one-to-one ishidawataru/sctp association;
// with any other network it uses a net.TCP connection framed the same way
// (kernel SCTP support is not probed), so the M3UA layer above never
// needs to know which transport carried a given frame.
package sctp

import (
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/ishidawataru/sctp"
	"github.com/pkg/errors"

	"github.com/sigtrand/sigtrand/internal/logging"
)

// State is the lifecycle of an Association.
type State uint8

const (
	Closed State = iota
	CookieWait
	CookieEchoed
	Established
	ShutdownPending
	ShutdownSent
	ShutdownReceived
	ShutdownAckSent
)

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case CookieWait:
		return "CookieWait"
	case CookieEchoed:
		return "CookieEchoed"
	case Established:
		return "Established"
	case ShutdownPending:
		return "ShutdownPending"
	case ShutdownSent:
		return "ShutdownSent"
	case ShutdownReceived:
		return "ShutdownReceived"
	case ShutdownAckSent:
		return "ShutdownAckSent"
	default:
		return "Unknown"
	}
}

// Errors surfaced to callers, per the spec's error-kind taxonomy.
var (
	ErrInvalidState    = errors.New("association: invalid state for operation")
	ErrAssociationFail = errors.New("association: failed to establish")
	ErrReceiveFailed   = errors.New("association: receive failed")
)

// minFrameLen is the smallest legal non-heartbeat frame: stream(2) + ppid(4).
const minFrameLen = 6

// frameHeaderLen is the length field's own width, excluded from the length value.
const frameHeaderLen = 4

// Config configures how an Association dials or listens.
type Config struct {
	Network      string // "sctp" or "tcp"
	LocalAddress string
	RemoteAddress string
	Port          int
	Streams       int
	HeartbeatInterval time.Duration
}

// Association is a single reliable, ordered, multi-stream channel.
//
// The on-wire frame is u32 length || u16 stream_id || u32 ppid || payload,
// length excluding its own 4 bytes; a zero length frame is a heartbeat.
type Association struct {
	mu    sync.Mutex
	conn  net.Conn
	state State

	writeMu sync.Mutex // serialize writers; a single reader owns recv

	heartbeatStop chan struct{}
	heartbeatWG   sync.WaitGroup

	log *logging.Logger
}

// Dial establishes an outbound association.
func Dial(cfg Config) (*Association, error) {
	conn, err := dial(cfg)
	if err != nil {
		return nil, errors.Wrap(ErrAssociationFail, err.Error())
	}

	a := &Association{
		conn:  conn,
		state: Established,
		log:   logging.Get().Component("sctp"),
	}
	a.startHeartbeat(cfg.HeartbeatInterval)
	return a, nil
}

func dial(cfg Config) (net.Conn, error) {
	raddr := net.JoinHostPort(cfg.RemoteAddress, itoa(cfg.Port))
	if cfg.Network == "sctp" {
		ra, err := sctp.ResolveSCTPAddr("sctp", raddr)
		if err != nil {
			return nil, err
		}
		return sctp.DialSCTP("sctp", nil, ra)
	}
	return net.Dial("tcp", raddr)
}

// Listener accepts inbound associations.
type Listener struct {
	ln  net.Listener
	cfg Config
}

// Listen opens a listener for inbound associations.
func Listen(cfg Config) (*Listener, error) {
	addr := net.JoinHostPort(cfg.LocalAddress, itoa(cfg.Port))
	if cfg.Network == "sctp" {
		la, err := sctp.ResolveSCTPAddr("sctp", addr)
		if err != nil {
			return nil, err
		}
		ln, err := sctp.ListenSCTP("sctp", la)
		if err != nil {
			return nil, err
		}
		return &Listener{ln: ln, cfg: cfg}, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln, cfg: cfg}, nil
}

// Accept adopts a single inbound connection as an established Association.
func (l *Listener) Accept() (*Association, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, errors.Wrap(ErrAssociationFail, err.Error())
	}

	a := &Association{
		conn:  conn,
		state: Established,
		log:   logging.Get().Component("sctp"),
	}
	a.startHeartbeat(l.cfg.HeartbeatInterval)
	return a, nil
}

// Close stops accepting new associations.
func (l *Listener) Close() error { return l.ln.Close() }

// State returns the current lifecycle state.
func (a *Association) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Send writes one frame. Permitted only in Established.
//
// ordered is advisory: this implementation always delivers ordered frames,
// matching the spec's "emulating over a strict FIFO transport" allowance.
func (a *Association) Send(streamID uint16, payload []byte, ordered bool) error {
	if a.State() != Established {
		return ErrInvalidState
	}

	frame := make([]byte, frameHeaderLen+minFrameLen+len(payload))
	binary.BigEndian.PutUint32(frame[0:4], uint32(minFrameLen+len(payload)))
	binary.BigEndian.PutUint16(frame[4:6], streamID)
	binary.BigEndian.PutUint32(frame[6:10], 0x00000003) // PPID, M3UA
	copy(frame[10:], payload)

	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	_, err := a.conn.Write(frame)
	if err != nil {
		return errors.Wrap(err, "association: send failed")
	}
	return nil
}

// Recv blocks for one complete frame and returns its stream id and payload.
func (a *Association) Recv() (uint16, []byte, error) {
	var lenBuf [frameHeaderLen]byte
	if _, err := io.ReadFull(a.conn, lenBuf[:]); err != nil {
		return 0, nil, errors.Wrap(ErrReceiveFailed, err.Error())
	}
	n := binary.BigEndian.Uint32(lenBuf[:])

	if n == 0 {
		// Heartbeat: no stream/ppid/payload follow.
		return 0, nil, nil
	}
	if n < minFrameLen {
		return 0, nil, errors.Wrap(ErrReceiveFailed, "malformed frame: below minimum payload")
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(a.conn, body); err != nil {
		return 0, nil, errors.Wrap(ErrReceiveFailed, err.Error())
	}

	streamID := binary.BigEndian.Uint16(body[0:2])
	return streamID, body[6:], nil
}

// Close runs the graceful shutdown sequence: Established -> ShutdownPending
// -> Closed. Idempotent; concurrent Sends after Close fail fast.
func (a *Association) Close() error {
	a.mu.Lock()
	if a.state == Closed {
		a.mu.Unlock()
		return nil
	}
	a.state = ShutdownPending
	a.mu.Unlock()

	if a.heartbeatStop != nil {
		close(a.heartbeatStop)
		a.heartbeatWG.Wait()
	}

	err := a.conn.Close()

	a.mu.Lock()
	a.state = Closed
	a.mu.Unlock()

	return err
}

func (a *Association) startHeartbeat(interval time.Duration) {
	if interval <= 0 {
		return
	}
	a.heartbeatStop = make(chan struct{})
	a.heartbeatWG.Add(1)
	go func() {
		defer a.heartbeatWG.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				a.writeMu.Lock()
				_, err := a.conn.Write([]byte{0, 0, 0, 0})
				a.writeMu.Unlock()
				if err != nil {
					a.log.Warn("heartbeat write failed, association considered lost", "error", err.Error())
					return
				}
			case <-a.heartbeatStop:
				return
			}
		}
	}()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
