package comms

import "sync"

// queue is an unbounded FIFO of raw transport chunks. The receive worker
// pushes, the consumer drains. Closing wakes every waiter; a drain on a
// closed queue still returns whatever is buffered first.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	chunks [][]byte
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(chunks ...[]byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.chunks = append(q.chunks, chunks...)
	q.cond.Broadcast()
}

// drainWait blocks until at least one chunk is buffered or the queue is
// closed, then returns everything buffered. ok is false only when the queue
// is closed and empty.
func (q *queue) drainWait() (chunks [][]byte, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.chunks) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.chunks) == 0 {
		return nil, false
	}
	chunks = q.chunks
	q.chunks = nil
	return chunks, true
}

func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
