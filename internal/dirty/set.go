// Package dirty tracks which physical slots still need their content
// produced.
//
// A Set packs one bit per slot into uint64 words (64 slots per word).
// Bits are updated atomically, so a worker uploading tile content may clear
// bits while the owning goroutine reads them. Capacity is fixed at creation.
package dirty

import (
	"math/bits"
	"sync/atomic"
)

// Set is a fixed-size atomic bitmap indexed by slot ID.
type Set struct {
	// words holds the bits: word index = id / 64, bit position = id % 64.
	words []atomic.Uint64

	// n is the number of valid bits.
	n int
}

// New creates a set able to hold n slots. All bits start clear.
// Returns nil if n is negative.
func New(n int) *Set {
	if n < 0 {
		return nil
	}
	return &Set{
		words: make([]atomic.Uint64, (n+63)/64),
		n:     n,
	}
}

// Mark sets the bit for id. Out-of-range IDs are ignored.
func (s *Set) Mark(id int) {
	if id < 0 || id >= s.n {
		return
	}
	s.words[id/64].Or(1 << (id & 63))
}

// Clear clears the bit for id. Out-of-range IDs are ignored.
func (s *Set) Clear(id int) {
	if id < 0 || id >= s.n {
		return
	}
	s.words[id/64].And(^(uint64(1) << (id & 63)))
}

// Has reports whether the bit for id is set.
// Returns false for out-of-range IDs.
func (s *Set) Has(id int) bool {
	if id < 0 || id >= s.n {
		return false
	}
	return s.words[id/64].Load()&(1<<(id&63)) != 0
}

// MarkAll sets every bit.
func (s *Set) MarkAll() {
	full := s.n / 64
	for i := 0; i < full; i++ {
		s.words[i].Store(^uint64(0))
	}
	if rem := s.n % 64; rem > 0 {
		s.words[full].Store((uint64(1) << rem) - 1)
	}
}

// ForEach calls fn for each set bit in ascending order without clearing it.
func (s *Set) ForEach(fn func(id int)) {
	if fn == nil {
		return
	}
	for wi := range s.words {
		word := s.words[wi].Load()
		for word != 0 {
			b := bits.TrailingZeros64(word)
			id := wi*64 + b
			if id >= s.n {
				break
			}
			fn(id)
			word &^= 1 << b
		}
	}
}
