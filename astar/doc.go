// Package astar implements goal-directed shortest-path search (A*) over a
// static directed road graph, with Dijkstra as the same engine running a zero
// heuristic.
//
// Overview:
//
//   - One parameterized engine serves both algorithms. The heuristic is the only
//     difference, so the production path (A* with haversine) and the oracle
//     (Dijkstra) cannot drift apart.
//   - The frontier is a lazy-deletion min-heap keyed by f = g + h. Improving a
//     node pushes a new entry; stale entries are dropped when popped.
//   - The goal is tested when it is popped, not when it is first reached.
//   - g-scores are lazy: an unrecorded node counts as +∞.
//
// Outcomes of Solve:
//
//   - Found: Cost is optimal and Path runs from start to goal inclusive.
//   - Unreachable: Found == false, Cost == Unreachable, Path nil. Not an error.
//   - Error: ErrInvalidNode for IDs outside [1, NodeCount()], ErrNegativeWeight
//     or ErrCostOverflow when the graph breaks the engine's preconditions, and
//     ErrMissingCoords from AStar on a graph with partial coordinates.
//
// Result also carries Expansions (finalized nodes), Pushes and StalePops. With a
// consistent heuristic A* never expands more nodes than Dijkstra for the same
// query, which is what analysis compares.
//
// Complexity:
//
//   - Time:  O((V + E) log E) worst case, much less for A* with a good heuristic.
//   - Space: O(V) for g-scores, predecessors and the visited bitset, plus O(E) heap
//     entries in the worst case.
//
// Concurrency: an Engine is immutable and every Solve owns its own state, so
// one Engine may be shared across goroutines as long as the graph is read-only.
//
// Example:
//
//	g, _ := roadgraph.Load("maps/philadelphia")
//	res, err := astar.AStar(g, 1, 4200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !res.Found {
//	    fmt.Println("no path")
//	}
package astar
