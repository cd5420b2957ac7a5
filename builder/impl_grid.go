// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// impl_grid.go - Grid(rows, cols): a Manhattan street plan.
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • Node IDs are row-major: base + r*cols + c + 1.
//   • Row r sits r*spacing meters north of the origin, column c sits
//     c*spacing meters east.
//   • Roads join each cell to its right and upper neighbor where they exist.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadpath/roadgraph"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols orthogonal street grid.
func Grid(rows, cols int) Constructor {
	return func(nw *Network, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		// 1) Nodes in row-major order.
		base := roadgraph.NodeID(nw.NodeCount())
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				nw.AddNode(cfg.origin.Offset(float64(r)*cfg.spacing, float64(c)*cfg.spacing))
			}
		}
		id := func(r, c int) roadgraph.NodeID {
			return base + roadgraph.NodeID(r*cols+c+1)
		}

		// 2) Right then upper neighbor, per cell.
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					nw.AddRoad(id(r, c), id(r, c+1))
				}
				if r+1 < rows {
					nw.AddRoad(id(r, c), id(r+1, c))
				}
			}
		}

		return nil
	}
}
