// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// impl_path.go - Path(n): a single road running east.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadpath/roadgraph"
)

const (
	methodPath   = "Path"
	minPathNodes = 1
)

// Path returns a Constructor for n nodes spaced evenly eastwards, each joined
// to the next.
func Path(n int) Constructor {
	return func(nw *Network, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		var prev roadgraph.NodeID
		for i := 0; i < n; i++ {
			id := nw.AddNode(cfg.origin.Offset(0, float64(i)*cfg.spacing))
			if i > 0 {
				nw.AddRoad(prev, id)
			}
			prev = id
		}

		return nil
	}
}
