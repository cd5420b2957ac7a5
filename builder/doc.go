// Package builder generates synthetic road networks for tests, benchmarks and
// demos.
//
// The package offers:
//
//   - Constructors (topology): Grid, RandomGeometric, Path and Islands.
//     A Constructor only places nodes on the globe and declares roads between
//     them; it never chooses weights.
//   - Build: runs one Constructor against a resolved configuration, then turns
//     every road into arcs and freezes the result into a *roadgraph.Graph.
//   - Options: WithSeed, WithOrigin, WithSpacing, WithDetour, WithOneWayRatio.
//
// Guarantees:
//
//   - Determinism: the same constructor, options and seed give an identical graph.
//   - Admissibility: every arc weight is ceil(great-circle length × detour) with
//     detour ≥ 1, computed from the stored fixed-point coordinates. The haversine
//     heuristic is therefore admissible and consistent on every built network.
//   - Node IDs are dense, 1-based and assigned in constructor order.
//   - Fast-fail on meaningless option values via panics in option constructors;
//     constructors return sentinel errors.
package builder
