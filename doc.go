// Package roadpath finds optimal routes on large road networks and measures
// how much work a geographic heuristic saves over a blind search.
//
// 🚀 What is in the box?
//
//	A compact routing toolkit built around one search engine:
//		• A* with a great-circle heuristic, and Dijkstra as the same engine
//		  with a zero heuristic
//		• A compressed adjacency store loaded from DIMACS .gr/.co files
//		• Reachability, weak components and synthetic test networks
//		• Path reports, encoded polylines and Prometheus metrics
//		• A benchmark runner with SQLite history, and an HTTP API
//
// Packages, bottom up:
//
//	geo/        fixed-point coordinates and haversine distance
//	roadgraph/  immutable CSR road graph, builder and DIMACS loader
//	frontier/   priority queues (binary heap, linear list)
//	visited/    bitset closed set
//	heuristic/  haversine and zero estimates
//	astar/      the search engine
//	reach/      BFS reachability, weak and strong components
//	builder/    grid, path, random geometric and island networks
//	report/     path line, console summary, polyline
//	metrics/    Prometheus collectors
//	analysis/   A* versus Dijkstra scenarios, records and storage
//	config/     .env, environment and flag configuration, logging
//	server/     gin HTTP API
//
// Quick example:
//
//	1 ──5── 2 ──5── 3 ──1── 4
//	 ╲_______20______╱
//
//	solve(1, 4) = 11 via [1 2 3 4]
//
// Commands live under cmd/: roadpath (one query), roadpath-analyze (the
// benchmark) and roadpath-server (the HTTP API).
package roadpath
