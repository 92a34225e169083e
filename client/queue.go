package client

import (
	"sync"
)

// Queue is the execution context a completion handler runs on.
type Queue interface {
	Dispatch(fn func())
}

// QueueFunc adapts a plain func to a [Queue].
type QueueFunc func(fn func())

func (f QueueFunc) Dispatch(fn func()) { f(fn) }

var (
	// Immediate runs the work on whichever goroutine dispatches it,
	// usually the adaptor's.
	Immediate Queue = QueueFunc(func(fn func()) { fn() })

	// Async runs each piece of work on its own goroutine.
	Async Queue = QueueFunc(func(fn func()) { go fn() })
)

// queueOrDefault treats a nil Queue as Immediate.
func queueOrDefault(q Queue) Queue {
	if q == nil {
		return Immediate
	}

	return q
}

// SerialQueue runs dispatched work one item at a time, in dispatch order,
// on a single dedicated goroutine.
type SerialQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	closed  bool
	done    chan struct{}
}

// NewSerialQueue starts a SerialQueue. Call Close to stop its goroutine.
func NewSerialQueue() *SerialQueue {
	q := &SerialQueue{
		done: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)

	go q.run()

	return q
}

// Dispatch enqueues fn. Once the queue is closed, fn runs on the calling
// goroutine instead so that no completion is ever dropped.
func (q *SerialQueue) Dispatch(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		fn()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	q.cond.Signal()
}

// Close drains the work already enqueued and stops the queue's goroutine.
// It blocks until the drain completes.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.mu.Unlock()

	q.cond.Signal()
	<-q.done
}

func (q *SerialQueue) run() {
	defer close(q.done)

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}

		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
	}
}
