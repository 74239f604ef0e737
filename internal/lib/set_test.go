package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetKeepsInsertionOrder(t *testing.T) {
	s := NewSet("b", "a")
	assert.True(t, s.Add("c"))
	assert.False(t, s.Add("a"))

	assert.Equal(t, []string{"b", "a", "c"}, s.AsSlice())
	assert.Equal(t, 3, s.Size())
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Contains("z"))
}

func TestSetClearIsSharedByCopies(t *testing.T) {
	s := NewSet("x", "y")
	cp := s
	cp.Clear()

	assert.Equal(t, 0, s.Size())
	assert.Empty(t, s.AsSlice())
	assert.True(t, s.Add("x"))
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Enqueue("1", "2")
	q.Enqueue("3")

	for _, want := range []string{"1", "2", "3"} {
		got, ok := q.Dequeue()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Size())
}
