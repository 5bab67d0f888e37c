package control

import "sync/atomic"

const queueSize = 16

type edgeEvent struct {
	id   Button
	edge Edge
}

// EdgeQueue is a fixed ring of edges with one producer and one consumer.
// The producer may be an interrupt handler.
type EdgeQueue struct {
	ring [queueSize]edgeEvent
	head atomic.Uint32 // next slot to read, written by the consumer
	tail atomic.Uint32 // next slot to write, written by the producer
}

// Push appends an edge. It reports false when the queue is full.
func (q *EdgeQueue) Push(id Button, e Edge) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() >= queueSize {
		return false
	}

	q.ring[tail%queueSize] = edgeEvent{id, e}
	q.tail.Store(tail + 1)

	return true
}

// Pop removes the oldest edge.
func (q *EdgeQueue) Pop() (Button, Edge, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return 0, 0, false
	}

	ev := q.ring[head%queueSize]
	q.head.Store(head + 1)

	return ev.id, ev.edge, true
}

// Len reports the number of queued edges.
func (q *EdgeQueue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}
