package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrHasherIsStable(t *testing.T) {
	a := NewStrHasher(7)
	b := NewStrHasher(7)

	assert.Equal(t, a.Hash("node-1"), b.Hash("node-1"))
	assert.NotEqual(t, a.Hash("node-1"), a.Hash("node-2"))
	assert.NotEqual(t, a.Hash("node-1"), NewStrHasher(8).Hash("node-1"))
}

func TestStrHasherUnitRange(t *testing.T) {
	h := NewStrHasher(1)
	for _, s := range []string{"", "a", "root", "n0.1.2", "a much longer identifier"} {
		u := h.Unit(s)
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}
