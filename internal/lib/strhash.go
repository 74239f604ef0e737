package lib

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// StrHasher derives stable numbers from strings with xxhash. The same seed and string
// always give the same result, which is what lets per-node "random" attributes survive
// a rebuild unchanged.
type StrHasher struct {
	seed [8]byte
}

func NewStrHasher(seed uint64) *StrHasher {
	s := &StrHasher{}
	binary.LittleEndian.PutUint64(s.seed[:], seed)
	return s
}

// Hash returns the 64-bit digest of str mixed with the hasher seed.
func (s *StrHasher) Hash(str string) uint64 {
	d := xxhash.New()
	_, _ = d.Write(s.seed[:])
	_, _ = d.WriteString(str)
	return d.Sum64()
}

// Unit maps str onto [0, 1).
func (s *StrHasher) Unit(str string) float64 {
	// Top 53 bits fit a float64 mantissa exactly.
	return float64(s.Hash(str)>>11) / (1 << 53)
}
