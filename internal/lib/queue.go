package lib

import (
	"sync"
)

// Queue is a thread-safe FIFO of strings and should be held as a pointer.
type Queue struct {
	items []string
	mu    *sync.RWMutex
}

func NewQueue() *Queue {
	return &Queue{
		items: []string{},
		mu:    &sync.RWMutex{},
	}
}

func (q *Queue) Enqueue(items ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, items...)
}

// Dequeue pops from the front of the queue, ok is false when the queue is empty.
func (q *Queue) Dequeue() (item string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}

	item = q.items[0]
	q.items = q.items[1:]
	return item, true
}

func (q *Queue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}
