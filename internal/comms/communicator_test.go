package comms

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/protocol"
	"github.com/ezcoach/ezcoach-go/internal/testutil/testlog"
	"github.com/ezcoach/ezcoach-go/internal/transport"
)

func startPair(t *testing.T) (*Communicator, *transport.Pipe) {
	t.Helper()
	local, peer := transport.NewPipe()
	c := New(local, testlog.Start(t))
	c.Start()
	t.Cleanup(c.Disconnect)
	return c, peer
}

func receiveType(t *testing.T, peer *transport.Pipe) string {
	t.Helper()
	data, err := peer.Receive()
	if err != nil {
		t.Fatalf("peer receive: %v", err)
	}
	var m protocol.Message
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("peer decode %q: %v", data, err)
	}
	return m.Type()
}

func sendMessage(t *testing.T, peer *transport.Pipe, m protocol.Message) {
	t.Helper()
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := peer.Send(data); err != nil {
		t.Fatalf("peer send: %v", err)
	}
}

func TestConnectAnnouncesSession(t *testing.T) {
	c, peer := startPair(t)
	if err := c.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if got := receiveType(t, peer); got != protocol.TypeConnect {
		t.Fatalf("peer got %q, want connect", got)
	}
	if !c.Connected() {
		t.Fatal("communicator does not report connected")
	}
}

func TestSendRequiresConnection(t *testing.T) {
	c, _ := startPair(t)
	if err := c.SendStop(); !errors.Is(err, transport.ErrNotConnected) {
		t.Fatalf("got %v, want ErrNotConnected", err)
	}
}

func TestGetMessagesPreservesOrder(t *testing.T) {
	c, peer := startPair(t)
	if err := c.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	receiveType(t, peer)

	sendMessage(t, peer, protocol.Message{protocol.AttrType: protocol.TypeManifest, protocol.AttrName: "pong"})
	sendMessage(t, peer, protocol.Message{protocol.AttrType: protocol.TypeState})

	var got []string
	for len(got) < 2 {
		msgs, err := c.GetMessages()
		if err != nil {
			t.Fatalf("get messages: %v", err)
		}
		for _, m := range msgs {
			got = append(got, m.Type())
		}
	}
	if got[0] != protocol.TypeManifest || got[1] != protocol.TypeState {
		t.Fatalf("got order %v", got)
	}
}

func TestGetMessagesReassemblesSplitMessage(t *testing.T) {
	c, peer := startPair(t)
	if err := c.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	receiveType(t, peer)

	full := []byte(`{"type":"manifest","name":"pong"}`)
	if err := peer.Send(full[:10]); err != nil {
		t.Fatalf("peer send: %v", err)
	}
	if err := peer.Send(full[10:]); err != nil {
		t.Fatalf("peer send: %v", err)
	}

	msgs, err := c.GetMessages()
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Type() != protocol.TypeManifest {
		t.Fatalf("got %v, want one manifest", msgs)
	}
}

// Losing the transport must surface as exactly one synthesized disconnected
// message, then a terminal error.
func TestTransportLossSynthesizesSingleDisconnected(t *testing.T) {
	c, peer := startPair(t)
	if err := c.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	receiveType(t, peer)

	if err := peer.Close(); err != nil {
		t.Fatalf("peer close: %v", err)
	}

	msgs, err := c.GetMessages()
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Type() != protocol.TypeDisconnected {
		t.Fatalf("got %v, want one disconnected", msgs)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.GetMessages()
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, transport.ErrDisconnected) {
			t.Fatalf("got %v, want ErrDisconnected", err)
		}
	case <-time.After(time.Second):
		t.Fatal("get messages did not return after transport loss")
	}
	if c.Connected() {
		t.Fatal("communicator still reports connected")
	}
}

func TestDisconnectStopsWorker(t *testing.T) {
	local, _ := transport.NewPipe()
	c := New(local, zerolog.Nop())
	c.Start()
	if err := c.Connect(); err != nil {
		t.Fatalf("connect: %v", err)
	}
	c.Disconnect()

	if err := c.SendStop(); !errors.Is(err, transport.ErrNotConnected) {
		t.Fatalf("send after disconnect: got %v, want ErrNotConnected", err)
	}
}
