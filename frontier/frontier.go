package frontier

import (
	"container/heap"

	"github.com/katalvlaran/roadpath/roadgraph"
)

// Entry is one frontier record: a node and its estimated total cost f(n).
type Entry struct {
	Priority float64
	Node     roadgraph.NodeID
}

// before is the strict ordering used by every queue: priority first, then ID.
func (e Entry) before(o Entry) bool {
	if e.Priority != o.Priority {
		return e.Priority < o.Priority
	}
	return e.Node < o.Node
}

// Queue is the open-set contract consumed by the search engine.
type Queue interface {
	Push(node roadgraph.NodeID, priority float64)
	Pop() (Entry, bool)
	Empty() bool
	Len() int
	Reset()
}

// entries is the heap.Interface backing Heap, ordered by Entry.before.
type entries []Entry

// Len returns the number of entries in the heap.
func (pq entries) Len() int { return len(pq) }

// Less defines the comparison: smaller priority, then smaller node ID, wins.
func (pq entries) Less(i, j int) bool { return pq[i].before(pq[j]) }

// Swap swaps two elements in the heap.
func (pq entries) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x; called by heap.Push.
func (pq *entries) Push(x any) { *pq = append(*pq, x.(Entry)) }

// Pop removes the last element; called by heap.Pop after it swapped the minimum there.
func (pq *entries) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// Heap is a binary min-heap frontier. The zero value is ready to use.
type Heap struct {
	pq entries
}

// NewHeap returns a Heap with room for capacity entries before it reallocates.
func NewHeap(capacity int) *Heap {
	return &Heap{pq: make(entries, 0, max(capacity, 0))}
}

// Push inserts (node, priority). O(log n).
func (h *Heap) Push(node roadgraph.NodeID, priority float64) {
	heap.Push(&h.pq, Entry{Priority: priority, Node: node})
}

// Pop removes and returns the minimum entry. O(log n).
func (h *Heap) Pop() (Entry, bool) {
	if len(h.pq) == 0 {
		return Entry{}, false
	}
	return heap.Pop(&h.pq).(Entry), true
}

// Peek returns the minimum entry without removing it.
func (h *Heap) Peek() (Entry, bool) {
	if len(h.pq) == 0 {
		return Entry{}, false
	}
	return h.pq[0], true
}

// Empty reports whether no entries remain.
func (h *Heap) Empty() bool { return len(h.pq) == 0 }

// Len returns the number of entries, stale duplicates included.
func (h *Heap) Len() int { return len(h.pq) }

// Reset drops every entry but keeps the allocated capacity.
func (h *Heap) Reset() { h.pq = h.pq[:0] }

// List is a linear-scan frontier: O(1) Push, O(n) Pop. Use it only for small
// inputs; it exists as a reference for Heap.
type List struct {
	items []Entry
}

// Push appends (node, priority).
func (l *List) Push(node roadgraph.NodeID, priority float64) {
	l.items = append(l.items, Entry{Priority: priority, Node: node})
}

// Pop scans for the minimum entry and removes it.
func (l *List) Pop() (Entry, bool) {
	if len(l.items) == 0 {
		return Entry{}, false
	}
	best := 0
	for i := 1; i < len(l.items); i++ {
		if l.items[i].before(l.items[best]) {
			best = i
		}
	}
	e := l.items[best]
	last := len(l.items) - 1
	l.items[best] = l.items[last]
	l.items = l.items[:last]

	return e, true
}

// Empty reports whether no entries remain.
func (l *List) Empty() bool { return len(l.items) == 0 }

// Len returns the number of entries.
func (l *List) Len() int { return len(l.items) }

// Reset drops every entry.
func (l *List) Reset() { l.items = l.items[:0] }

var (
	_ Queue = (*Heap)(nil)
	_ Queue = (*List)(nil)
)
