package server

import "github.com/katalvlaran/roadpath/roadgraph"

// GraphResponse describes the loaded map.
type GraphResponse struct {
	Map           string `json:"map"`
	Nodes         int    `json:"nodes"`
	Arcs          int    `json:"arcs"`
	DuplicateArcs int    `json:"duplicate_arcs"`
	Policy        string `json:"duplicate_policy"`
	MissingCoords int    `json:"missing_coords"`
	MaxOutDegree  int    `json:"max_out_degree"`
	MinWeight     int64  `json:"min_weight"`
	MaxWeight     int64  `json:"max_weight"`
	Components    int    `json:"components"`
	LargestSize   int    `json:"largest_component"`
	Strong        int    `json:"strong_components"`
	LargestStrong int    `json:"largest_strong_component"`
}

// RouteResponse is the answer to one shortest-path query. Cost is -1 and
// Path is empty when Reachable is false.
type RouteResponse struct {
	From       roadgraph.NodeID   `json:"from"`
	To         roadgraph.NodeID   `json:"to"`
	Algorithm  string             `json:"algorithm"`
	Reachable  bool               `json:"reachable"`
	Cost       int64              `json:"cost"`
	Path       []roadgraph.NodeID `json:"path"`
	Expansions int                `json:"expansions"`
	Pushes     int                `json:"pushes"`
	StalePops  int                `json:"stale_pops"`
	ElapsedMS  float64            `json:"elapsed_ms"`
	Report     string             `json:"report"`
	Polyline   string             `json:"polyline,omitempty"`
}

// EngineRun is one side of a CompareResponse.
type EngineRun struct {
	Cost       int64   `json:"cost"`
	Reachable  bool    `json:"reachable"`
	Expansions int     `json:"expansions"`
	Pushes     int     `json:"pushes"`
	ElapsedMS  float64 `json:"elapsed_ms"`
}

// CompareResponse reports A* against Dijkstra on one query.
type CompareResponse struct {
	From              roadgraph.NodeID `json:"from"`
	To                roadgraph.NodeID `json:"to"`
	AStar             EngineRun        `json:"astar"`
	Dijkstra          EngineRun        `json:"dijkstra"`
	Improvement       float64          `json:"improvement_pct"`
	ExpectUnreachable bool             `json:"expect_unreachable"`
	ExpectReachable   bool             `json:"expect_reachable"`
	Status            string           `json:"status"`
}

// NearestResponse names the node closest to a position.
type NearestResponse struct {
	Node      roadgraph.NodeID `json:"node"`
	Lat       float64          `json:"lat"`
	Lon       float64          `json:"lon"`
	DistanceM float64          `json:"distance_m"`
}

// ReachResponse summarizes a breadth-first walk. Path holds the fewest-hops
// route to To when one was asked for and reached.
type ReachResponse struct {
	From      roadgraph.NodeID   `json:"from"`
	MaxDepth  int                `json:"max_depth"`
	Reached   int                `json:"reached"`
	Deepest   int                `json:"deepest"`
	To        roadgraph.NodeID   `json:"to,omitempty"`
	Reachable bool               `json:"reachable"`
	Hops      int                `json:"hops"`
	Path      []roadgraph.NodeID `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
}
