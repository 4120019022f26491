package channel

import (
	"context"
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	apperrors "timetrack/internal/platform/errors"
)

// queue is an unbounded FIFO with a level-triggered ready signal. Any number
// of goroutines may push; pops are expected from a single consumer.
type queue[T any] struct {
	mu     sync.Mutex
	items  *linkedlistqueue.Queue
	ready  chan struct{}
	done   chan struct{}
	closed bool
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		items: linkedlistqueue.New(),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func (q *queue[T]) push(v T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items.Enqueue(v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

func (q *queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	raw, ok := q.items.Dequeue()
	if !ok {
		var zero T
		return zero, false
	}
	return raw.(T), true
}

func (q *queue[T]) drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Empty() {
		return nil
	}
	out := make([]T, 0, q.items.Size())
	for {
		raw, ok := q.items.Dequeue()
		if !ok {
			return out
		}
		out = append(out, raw.(T))
	}
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Size()
}

func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

func (q *queue[T]) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// recv blocks until an item is available. Items queued before close are still
// delivered; after that it returns ErrClosed.
func (q *queue[T]) recv(ctx context.Context) (T, error) {
	for {
		if v, ok := q.pop(); ok {
			return v, nil
		}
		var zero T
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-q.done:
			if v, ok := q.pop(); ok {
				return v, nil
			}
			return zero, apperrors.ErrClosed
		case <-q.ready:
		}
	}
}
