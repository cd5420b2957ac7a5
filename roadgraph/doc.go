// Package roadgraph provides the immutable, read-optimized road network used by
// the search engines: a directed graph over dense 1-based node IDs, with a
// non-negative integer weight (meters) on every arc and a fixed-point
// geographic coordinate on every node.
//
// Storage layout (compressed sparse row):
//
//	offsets[u] .. offsets[u+1]  index the outgoing arcs of node u in arcs[]
//	arcs[i]                     {To, Weight}, sorted by To within each node
//	coords[u]                   geo.Coord of node u (coords[0] is unused)
//
// A Graph is produced once by a Builder (or by the DIMACS loader, which drives a
// Builder) and is never mutated afterwards, so any number of goroutines may
// query it concurrently without locking.
//
// Builder rules:
//
//   - Node IDs live in [1, NodeCount()]; ID 0 is reserved.
//   - Negative weights are rejected with ErrNegativeWeight.
//   - Several arcs for the same ordered pair collapse into one according to the
//     DuplicatePolicy: DuplicateLastWins (default, the last arc read is kept) or
//     DuplicateMinWins (the cheapest arc is kept). Collapsed arcs are counted in
//     Stats().DuplicateArcs so the loss is observable.
//
// DIMACS files:
//
//	<base>.co   c comment | p aux sp co <n> | v <id> <lon×10^6> <lat×10^6>
//	<base>.gr   c comment | p sp <n> <m>    | a <from> <to> <weight>
//
// Load reads both files (or their .gz variants) and returns the built Graph.
//
// Errors:
//
//	ErrInvalidNode     - node ID outside [1, NodeCount()].
//	ErrNegativeWeight  - arc with a weight below zero.
//	ErrBadNodeCount    - Builder created with a negative node count.
//	ErrBuilderUsed     - Builder reused after Build.
//	ErrMapNotFound     - .gr/.co pair missing on disk.
//	ErrMalformedLine   - unparsable DIMACS record (file and line are attached).
//	ErrMissingCoords   - loaded map with nodes that have no coordinate.
package roadgraph
