// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// api.go - Build orchestrator and the network staging area.
//
// Design contract:
//   • One orchestrator: Build(ctor, opts...). Resolves cfg, runs ctor, freezes.
//   • Constructors add nodes and roads to a *Network; weights and directions
//     are decided once, in Build, from the same RNG stream.
//   • Determinism: same ctor, options and seed ⇒ identical graph.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/roadpath/geo"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// Constructor places nodes and declares roads on a Network.
// Constructors validate their parameters and return sentinel errors; they
// never panic.
type Constructor func(nw *Network, cfg builderConfig) error

// road is an undirected segment awaiting a weight and a direction.
type road struct {
	u, v roadgraph.NodeID
}

// Network is the mutable staging area constructors write into.
type Network struct {
	coords []geo.Coord // index 0 is the reserved ID
	roads  []road
}

// AddNode appends a node at c and returns its ID.
func (nw *Network) AddNode(c geo.Coord) roadgraph.NodeID {
	if len(nw.coords) == 0 {
		nw.coords = append(nw.coords, geo.Coord{})
	}
	nw.coords = append(nw.coords, c)

	return roadgraph.NodeID(len(nw.coords) - 1)
}

// AddRoad declares a two-way road between u and v. Build may later turn it
// one-way. Self-loops are ignored.
func (nw *Network) AddRoad(u, v roadgraph.NodeID) {
	if u == v {
		return
	}
	nw.roads = append(nw.roads, road{u: u, v: v})
}

// NodeCount returns the number of nodes placed so far.
func (nw *Network) NodeCount() int {
	if len(nw.coords) == 0 {
		return 0
	}
	return len(nw.coords) - 1
}

// maxLon returns the easternmost fixed-point longitude placed so far.
func (nw *Network) maxLon() int32 {
	m := int32(math.MinInt32)
	for _, c := range nw.coords[1:] {
		m = max(m, c.Lon)
	}
	return m
}

// Build runs ctor over a fresh Network and freezes it into a graph.
//
// For every declared road, in declaration order, Build draws a detour factor
// and, with probability WithOneWayRatio, a single direction. The arc weight is
// ceil(haversine(u, v) × detour) on the stored coordinates.
func Build(ctor Constructor, opts ...Option) (*roadgraph.Graph, error) {
	if ctor == nil {
		return nil, fmt.Errorf("Build: %w", ErrNilConstructor)
	}
	cfg := newBuilderConfig(opts...)

	// 1) Topology.
	nw := &Network{}
	if err := ctor(nw, cfg); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	// 2) Nodes.
	b, err := roadgraph.NewBuilder(nw.NodeCount())
	if err != nil {
		return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
	}
	for id := 1; id < len(nw.coords); id++ {
		if err = b.SetCoord(roadgraph.NodeID(id), nw.coords[id]); err != nil {
			return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
		}
	}

	// 3) Arcs: detour then direction, one RNG draw each, in road order.
	for _, r := range nw.roads {
		w := cfg.weight(nw.coords[r.u], nw.coords[r.v])
		from, to, twoWay := r.u, r.v, true
		if cfg.oneWay > 0 && cfg.rng.Float64() < cfg.oneWay {
			twoWay = false
			if cfg.rng.Intn(2) == 1 {
				from, to = to, from
			}
		}
		if err = b.AddArc(from, to, w); err != nil {
			return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
		}
		if twoWay {
			if err = b.AddArc(to, from, w); err != nil {
				return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
			}
		}
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
	}

	return g, nil
}

// weight draws a detour in [detourMin, detourMax] and scales the great-circle
// length by it, rounding up to whole meters.
func (c builderConfig) weight(a, b geo.Coord) int64 {
	detour := c.detourMin
	if c.detourMax > c.detourMin {
		detour += c.rng.Float64() * (c.detourMax - c.detourMin)
	}
	return int64(math.Ceil(geo.Haversine(a, b) * detour))
}
