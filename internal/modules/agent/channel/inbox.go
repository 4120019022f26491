package channel

// Inbox is the runtime's multi-producer command queue. Send never blocks.
type Inbox[T any] struct {
	q *queue[T]
}

func NewInbox[T any]() *Inbox[T] {
	return &Inbox[T]{q: newQueue[T]()}
}

// Send enqueues v and reports whether the inbox still accepts commands.
func (i *Inbox[T]) Send(v T) bool {
	return i.q.push(v)
}

// Drain removes everything queued right now, in arrival order.
func (i *Inbox[T]) Drain() []T {
	return i.q.drain()
}

// Ready fires at least once after any Send since the last receive from it.
func (i *Inbox[T]) Ready() <-chan struct{} {
	return i.q.ready
}

func (i *Inbox[T]) Len() int {
	return i.q.len()
}

// Close makes further sends fail. Already queued commands stay drainable.
func (i *Inbox[T]) Close() {
	i.q.close()
}
