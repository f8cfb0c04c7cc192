package sctp_test

import (
	"net"
	"testing"
	"time"

	"github.com/sigtrand/sigtrand/sctp"
)

func pipeAssociations() (*sctp.Association, *sctp.Association) {
	c1, c2 := net.Pipe()
	a := sctp.NewForTest(c1)
	b := sctp.NewForTest(c2)
	return a, b
}

func TestSendRecvRoundTrip(t *testing.T) {
	a, b := pipeAssociations()
	defer a.Close()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		stream, payload, err := b.Recv()
		if err != nil {
			t.Errorf("recv: %v", err)
			return
		}
		if stream != 3 {
			t.Errorf("got stream %d want 3", stream)
		}
		if string(payload) != "hello" {
			t.Errorf("got payload %q want hello", payload)
		}
	}()

	if err := a.Send(3, []byte("hello"), true); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for recv")
	}
}

func TestSendInvalidState(t *testing.T) {
	a, b := pipeAssociations()
	a.Close()
	b.Close()

	if err := a.Send(1, []byte("x"), true); err != sctp.ErrInvalidState {
		t.Fatalf("got %v want ErrInvalidState", err)
	}
}

func TestHeartbeatFrame(t *testing.T) {
	a, b := pipeAssociations()
	defer a.Close()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		stream, payload, err := b.Recv()
		if err != nil {
			t.Errorf("recv: %v", err)
			return
		}
		if stream != 0 || payload != nil {
			t.Errorf("expected empty heartbeat frame, got stream=%d payload=%v", stream, payload)
		}
	}()

	if err := a.WriteHeartbeatForTest(); err != nil {
		t.Fatalf("heartbeat write: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for heartbeat frame")
	}
}
