package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandedIsMonotonic(t *testing.T) {
	s := NewStore()
	assert.True(t, s.MarkExpanded("a"))
	assert.False(t, s.MarkExpanded("a"))
	assert.True(t, s.IsExpanded("a"))
	assert.Equal(t, []string{"a"}, s.Expanded())
}

func TestPendingSkipsExpanded(t *testing.T) {
	s := NewStore()
	s.MarkPending("a", "b", "c", "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.Pending())

	s.MarkExpanded("b")
	assert.False(t, s.IsPending("b"))
	assert.Equal(t, []string{"a", "c"}, s.Pending())

	s.MarkPending("b")
	assert.Equal(t, []string{"a", "c"}, s.Pending())
}

func TestNextPending(t *testing.T) {
	s := NewStore()
	s.MarkPending("a", "b", "c")
	s.MarkExpanded("a")

	id, ok := s.NextPending()
	assert.True(t, ok)
	assert.Equal(t, "b", id)
	id, ok = s.NextPending()
	assert.True(t, ok)
	assert.Equal(t, "c", id)
	_, ok = s.NextPending()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.MarkPending("a")
	s.MarkExpanded("b")
	s.Reset()

	assert.Empty(t, s.Pending())
	assert.Empty(t, s.Expanded())
	assert.False(t, s.IsExpanded("b"))
	_, ok := s.NextPending()
	assert.False(t, ok)
}
