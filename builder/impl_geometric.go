// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// impl_geometric.go - RandomGeometric(n, k): k-nearest-neighbor road mesh.
//
// Contract:
//   • n ≥ 2 and 1 ≤ k ≤ n-1 (else ErrTooFewVertices / ErrInvalidNeighbors).
//   • n points are scattered uniformly over a square of side √n·spacing
//     anchored at the origin.
//   • Each point gets a road to each of its k nearest points; a pair chosen
//     from both ends yields one road.
//
// Complexity:
//   • Time: O(n² log n) (sort of every distance row). Meant for test-sized n.
//   • Space: O(n).

package builder

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/roadpath/geo"
	"github.com/katalvlaran/roadpath/roadgraph"
)

const (
	methodGeometric   = "RandomGeometric"
	minGeometricNodes = 2
)

// RandomGeometric returns a Constructor for a random planar-ish mesh.
func RandomGeometric(n, k int) Constructor {
	return func(nw *Network, cfg builderConfig) error {
		if n < minGeometricNodes {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", methodGeometric, n, minGeometricNodes, ErrTooFewVertices)
		}
		if k < 1 || k >= n {
			return fmt.Errorf("%s: k=%d with n=%d: %w", methodGeometric, k, n, ErrInvalidNeighbors)
		}

		// 1) Scatter.
		side := math.Sqrt(float64(n)) * cfg.spacing
		ids := make([]roadgraph.NodeID, n)
		pts := make([]geo.Coord, n)
		for i := range pts {
			pts[i] = cfg.origin.Offset(cfg.rng.Float64()*side, cfg.rng.Float64()*side)
			ids[i] = nw.AddNode(pts[i])
		}

		// 2) Link each point to its k nearest; dedupe unordered pairs.
		type cand struct {
			j int
			d float64
		}
		seen := make(map[[2]int]struct{}, n*k)
		row := make([]cand, 0, n-1)
		for i := range pts {
			row = row[:0]
			for j := range pts {
				if j != i {
					row = append(row, cand{j: j, d: geo.Haversine(pts[i], pts[j])})
				}
			}
			slices.SortFunc(row, func(a, b cand) int {
				if a.d != b.d {
					if a.d < b.d {
						return -1
					}
					return 1
				}
				return a.j - b.j
			})
			for _, c := range row[:k] {
				key := [2]int{min(i, c.j), max(i, c.j)}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				nw.AddRoad(ids[key[0]], ids[key[1]])
			}
		}

		return nil
	}
}
