// Package transport owns the raw byte-stream connections used to reach a
// game process.
//
// Ownership boundary:
// - stream socket dialing and reads
// - in-process duplex pipe for embedding and tests
//
// No message-boundary awareness lives here; framing is the protocol
// package's concern.
package transport

import "errors"

var (
	ErrDisconnected      = errors.New("transport: disconnected")
	ErrNotConnected      = errors.New("transport: not connected")
	ErrConnectionRefused = errors.New("transport: connection refused")
)

// Transport is a raw byte-stream connection. Receive blocks until data
// arrives and fails with ErrDisconnected once the remote side is gone.
type Transport interface {
	Connect() error
	Send(data []byte) error
	Receive() ([]byte, error)
	Close() error
}
