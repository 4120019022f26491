package channel

import (
	"context"
	"sync"
)

// Mailbox is one consumer's unbounded event queue.
type Mailbox[T any] struct {
	q *queue[T]
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{q: newQueue[T]()}
}

// Publish enqueues v. Publishing to a closed mailbox is silently dropped.
func (m *Mailbox[T]) Publish(v T) bool {
	return m.q.push(v)
}

func (m *Mailbox[T]) Recv(ctx context.Context) (T, error) {
	return m.q.recv(ctx)
}

func (m *Mailbox[T]) TryRecv() (T, bool) {
	return m.q.pop()
}

func (m *Mailbox[T]) Close() {
	m.q.close()
}

func (m *Mailbox[T]) Closed() bool {
	return m.q.isClosed()
}

// Broadcast fans values out to every subscribed mailbox independently.
type Broadcast[T any] struct {
	mu        sync.Mutex
	mailboxes []*Mailbox[T]
	closed    bool
}

func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{}
}

// Subscribe registers a new mailbox. After Close it returns an already closed
// mailbox.
func (b *Broadcast[T]) Subscribe() *Mailbox[T] {
	m := NewMailbox[T]()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		m.Close()
		return m
	}
	b.mailboxes = append(b.mailboxes, m)
	return m
}

// Publish returns how many mailboxes accepted v.
func (b *Broadcast[T]) Publish(v T) int {
	b.mu.Lock()
	targets := append([]*Mailbox[T](nil), b.mailboxes...)
	b.mu.Unlock()

	delivered := 0
	for _, m := range targets {
		if m.Publish(v) {
			delivered++
		}
	}
	return delivered
}

func (b *Broadcast[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.mailboxes)
}

// Close closes every mailbox once. Consumers still receive what was queued.
func (b *Broadcast[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, m := range b.mailboxes {
		m.Close()
	}
}
