package sctp

import "net"

// NewForTest wraps an arbitrary net.Conn as an Established Association,
// bypassing Dial/Listen so framing logic can be exercised over net.Pipe.
func NewForTest(conn net.Conn) *Association {
	return &Association{conn: conn, state: Established}
}

// WriteHeartbeatForTest emits a single empty keep-alive frame.
func (a *Association) WriteHeartbeatForTest() error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	_, err := a.conn.Write([]byte{0, 0, 0, 0})
	return err
}
