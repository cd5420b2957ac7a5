// Package visited provides the closed set of a graph search: a dense bitset
// over node IDs 0..n.
//
// Membership is monotonic within a search. There is deliberately no Remove;
// a node leaves the set only when the whole set is Reset for the next run.
// IDs outside the sized range are never members, and Add ignores them.
package visited

import (
	"math/bits"

	"github.com/katalvlaran/roadpath/roadgraph"
)

const wordBits = 64

// Set is a fixed-capacity bitset of node IDs.
type Set struct {
	words []uint64
	n     int // largest addressable ID
	count int
}

// New returns an empty Set addressing IDs 0..n. A negative n yields an empty,
// zero-capacity Set.
func New(n int) *Set {
	if n < 0 {
		return &Set{n: -1}
	}
	return &Set{
		words: make([]uint64, n/wordBits+1),
		n:     n,
	}
}

// Add marks id as visited. Adding an existing member is a no-op.
func (s *Set) Add(id roadgraph.NodeID) {
	i := int(id)
	if i < 0 || i > s.n {
		return
	}
	w, mask := i/wordBits, uint64(1)<<(uint(i)%wordBits)
	if s.words[w]&mask == 0 {
		s.words[w] |= mask
		s.count++
	}
}

// Contains reports whether id has been added since the last Reset.
func (s *Set) Contains(id roadgraph.NodeID) bool {
	i := int(id)
	if i < 0 || i > s.n {
		return false
	}
	return s.words[i/wordBits]&(uint64(1)<<(uint(i)%wordBits)) != 0
}

// Len returns the number of distinct members.
func (s *Set) Len() int { return s.count }

// Cap returns the largest addressable ID.
func (s *Set) Cap() int { return s.n }

// Reset empties the set in O(n/64) without reallocating.
func (s *Set) Reset() {
	clear(s.words)
	s.count = 0
}

// Each calls fn for every member in ascending ID order.
func (s *Set) Each(fn func(id roadgraph.NodeID)) {
	for w, word := range s.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			fn(roadgraph.NodeID(w*wordBits + b))
			word &= word - 1
		}
	}
}
