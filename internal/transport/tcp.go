package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
)

const (
	DefaultAddr       = "127.0.0.1:6666"
	DefaultBufferSize = 4096
)

// TCP is a stream-socket transport. Receive blocks on a connection-established
// signal until Connect succeeds, so a reader started early never spins.
type TCP struct {
	addr       string
	bufferSize int

	mu    sync.Mutex
	conn  net.Conn
	ready chan struct{}
	done  chan struct{}
}

func NewTCP(addr string, bufferSize int) *TCP {
	if addr == "" {
		addr = DefaultAddr
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &TCP{
		addr:       addr,
		bufferSize: bufferSize,
		ready:      make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Connect dials the configured address. It is a no-op when already connected.
func (t *TCP) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return nil
	}
	conn, err := net.Dial("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrConnectionRefused, t.addr, err)
	}
	t.conn = conn
	close(t.ready)
	return nil
}

func (t *TCP) Send(data []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return nil
}

// Receive reads up to the configured buffer size. A remote close or reset
// surfaces as ErrDisconnected.
func (t *TCP) Receive() ([]byte, error) {
	select {
	case <-t.ready:
	case <-t.done:
		return nil, ErrDisconnected
	}

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return nil, ErrDisconnected
	}

	buf := make([]byte, t.bufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrDisconnected
		}
		return nil, fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	if n == 0 {
		return nil, ErrDisconnected
	}
	return buf[:n], nil
}

// Close is idempotent and unblocks any pending Receive.
func (t *TCP) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	select {
	case <-t.done:
		return nil
	default:
	}
	close(t.done)
	if t.conn != nil {
		err := t.conn.Close()
		t.conn = nil
		return err
	}
	return nil
}
