// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// impl_islands.go - Islands(a, b): two networks with no road between them.
//
// Contract:
//   • a runs first and keeps IDs 1..|a|; b follows with |a|+1..|a|+|b|.
//   • b is shifted east of a's easternmost node by a gap, so the two
//     components never overlap geographically.

package builder

import (
	"fmt"
)

const (
	methodIslands = "Islands"
	islandGapMul  = 10 // gap between islands, in units of spacing
)

// Islands returns a Constructor that places a and b side by side, disconnected.
func Islands(a, b Constructor) Constructor {
	return func(nw *Network, cfg builderConfig) error {
		if a == nil || b == nil {
			return fmt.Errorf("%s: %w", methodIslands, ErrNilConstructor)
		}
		if err := a(nw, cfg); err != nil {
			return fmt.Errorf("%s: first: %w", methodIslands, err)
		}

		shifted := cfg
		if nw.NodeCount() > 0 {
			shifted.origin.Lon = nw.maxLon()
		}
		shifted.origin = shifted.origin.Offset(0, islandGapMul*cfg.spacing)
		if err := b(nw, shifted); err != nil {
			return fmt.Errorf("%s: second: %w", methodIslands, err)
		}

		return nil
	}
}
