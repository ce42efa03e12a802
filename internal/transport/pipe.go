package transport

import "sync"

const pipeBuffer = 64

// Pipe is one end of an in-process duplex byte-stream connection. It stands
// in for a TCP connection when the game runs inside the same process.
type Pipe struct {
	in         <-chan []byte
	out        chan<- []byte
	closed     chan struct{}
	peerClosed chan struct{}
	closeOnce  sync.Once
}

// NewPipe returns two connected pipe ends. Bytes sent on one end are received
// by the other. Closing either end unblocks the peer's Receive with
// ErrDisconnected.
func NewPipe() (*Pipe, *Pipe) {
	ab := make(chan []byte, pipeBuffer)
	ba := make(chan []byte, pipeBuffer)
	aClosed := make(chan struct{})
	bClosed := make(chan struct{})
	a := &Pipe{in: ba, out: ab, closed: aClosed, peerClosed: bClosed}
	b := &Pipe{in: ab, out: ba, closed: bClosed, peerClosed: aClosed}
	return a, b
}

// Connect is a no-op; a pipe is connected from construction.
func (p *Pipe) Connect() error {
	return nil
}

func (p *Pipe) Send(data []byte) error {
	select {
	case <-p.closed:
		return ErrNotConnected
	case <-p.peerClosed:
		return ErrDisconnected
	default:
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	select {
	case p.out <- buf:
		return nil
	case <-p.peerClosed:
		return ErrDisconnected
	case <-p.closed:
		return ErrNotConnected
	}
}

func (p *Pipe) Receive() ([]byte, error) {
	// Buffered data outranks a close notification.
	select {
	case data := <-p.in:
		return data, nil
	default:
	}
	select {
	case data := <-p.in:
		return data, nil
	case <-p.closed:
		return nil, ErrDisconnected
	case <-p.peerClosed:
		select {
		case data := <-p.in:
			return data, nil
		default:
			return nil, ErrDisconnected
		}
	}
}

func (p *Pipe) Close() error {
	p.closeOnce.Do(func() {
		close(p.closed)
	})
	return nil
}
