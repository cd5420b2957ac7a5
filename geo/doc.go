// Package geo holds the fixed-point coordinate type shared by the road graph,
// the search heuristics and the synthetic network builder.
//
// DIMACS road maps store longitude and latitude as integers scaled by 10^6
// (micro-degrees). Coord keeps that representation in memory so a graph with
// millions of nodes spends 8 bytes per coordinate, and converts to floating
// point only when a distance is actually requested.
//
// Distances:
//
//   - Haversine returns the great-circle distance in meters on a sphere of
//     radius EarthRadiusMeters (6,371,000 m). A road between two points can
//     never be shorter than this value, which is what makes it an admissible
//     A* heuristic for graphs whose arc weights are road lengths in meters.
//
// Complexity: every function in this package is O(1).
package geo
