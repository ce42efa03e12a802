package comms

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/protocol"
	"github.com/ezcoach/ezcoach-go/internal/transport"
)

// Communicator pairs a transport with a background receive worker. The worker
// enqueues raw chunks as they arrive so the peer is never blocked on a slow
// consumer; GetMessages frames them on the calling goroutine.
type Communicator struct {
	tr  transport.Transport
	log zerolog.Logger

	q      *queue
	framer protocol.Framer

	mu        sync.Mutex
	started   bool
	connected bool
	running   atomic.Bool
}

func New(tr transport.Transport, logger zerolog.Logger) *Communicator {
	return &Communicator{
		tr:  tr,
		log: logger.With().Str("component", "comms").Logger(),
		q:   newQueue(),
	}
}

// NewTCP builds a communicator over a TCP transport. An empty addr or a
// non-positive bufferSize fall back to the transport defaults.
func NewTCP(addr string, bufferSize int, logger zerolog.Logger) *Communicator {
	return New(transport.NewTCP(addr, bufferSize), logger)
}

// Start launches the receive worker. Safe to call more than once.
func (c *Communicator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true
	c.running.Store(true)
	go c.run()
}

// Connect establishes the transport connection and announces the session
// with a connect message.
func (c *Communicator) Connect() error {
	if err := c.tr.Connect(); err != nil {
		return err
	}
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	return c.Send(protocol.NewConnect())
}

// Disconnect stops the worker and closes the transport.
func (c *Communicator) Disconnect() {
	c.running.Store(false)
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
	if err := c.tr.Close(); err != nil {
		c.log.Debug().Err(err).Msg("transport close")
	}
	c.q.close()
}

func (c *Communicator) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Send encodes and writes one message.
func (c *Communicator) Send(msg protocol.Message) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return fmt.Errorf("%w: send %s", transport.ErrNotConnected, msg.Type())
	}
	data, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type(), err)
	}
	c.log.Trace().Str("type", msg.Type()).Int("bytes", len(data)).Msg("send")
	return c.tr.Send(data)
}

func (c *Communicator) SendStart(players int, options map[string]any) error {
	return c.Send(protocol.NewStart(players, options))
}

func (c *Communicator) SendStop() error {
	return c.Send(protocol.NewStop())
}

func (c *Communicator) SendActions(actions []any) error {
	return c.Send(protocol.NewAction(actions))
}

// GetMessages blocks until at least one complete message is available and
// returns every message decoded so far, in arrival order. Once the session
// is down and the queue drained it returns transport.ErrDisconnected.
func (c *Communicator) GetMessages() ([]protocol.Message, error) {
	var msgs []protocol.Message
	for len(msgs) == 0 {
		chunks, ok := c.q.drainWait()
		if !ok {
			return nil, transport.ErrDisconnected
		}
		for _, chunk := range chunks {
			decoded, err := c.framer.Push(chunk)
			msgs = append(msgs, decoded...)
			if err != nil {
				return msgs, fmt.Errorf("frame incoming chunk: %w", err)
			}
		}
	}
	return msgs, nil
}

// run is the receive worker. On transport loss it synthesizes a single
// disconnected message so the consumer observes the loss in-band, then
// closes the queue.
func (c *Communicator) run() {
	for c.running.Load() {
		chunk, err := c.tr.Receive()
		if err != nil {
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			c.log.Debug().Err(err).Msg("receive worker stopping")
			if data, encErr := protocol.NewDisconnected().Encode(); encErr == nil {
				c.q.push(data)
			}
			c.q.close()
			return
		}
		c.q.push(chunk)
	}
}
