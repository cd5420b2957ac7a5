// Package analysis compares A* against Dijkstra on real or synthetic road
// networks and keeps the results.
//
//   - Compare runs both engines on one query and classifies the outcome.
//   - Scenario, Cities and DefaultScenarios describe the standard city-to-city
//     benchmark over the DIMACS USA road maps, plus identity and island cases.
//   - Suite loads each map once, resolves city coordinates to nodes and runs
//     every scenario for it, producing flat Records.
//   - Store persists runs to SQLite; WriteCSV and RenderTable format them.
package analysis
