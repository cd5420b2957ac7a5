package reach

import "github.com/katalvlaran/roadpath/roadgraph"

// Components partitions the nodes of a graph. Weak builds it from weakly
// connected components, Strong from strongly connected ones.
type Components struct {
	label []int32 // by node ID; label[0] is unused
	sizes []int   // by label
}

// Weak computes the weakly connected components of g with a union-find over
// its arcs. Labels are dense, 0-based and ordered by each component's
// smallest node ID.
func Weak(g Graph) *Components {
	if g == nil {
		return &Components{}
	}
	n := g.NodeCount()
	parent := make([]int32, n+1)
	for i := range parent {
		parent[i] = int32(i)
	}
	find := func(x int32) int32 {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for u := 1; u <= n; u++ {
		for _, a := range g.Neighbors(roadgraph.NodeID(u)) {
			if a.To < 1 || int(a.To) > n {
				continue
			}
			ru, rv := find(int32(u)), find(int32(a.To))
			if ru != rv {
				// smaller root wins so labels follow the smallest ID
				if ru < rv {
					parent[rv] = ru
				} else {
					parent[ru] = rv
				}
			}
		}
	}

	return relabel(n, func(u int) int32 { return find(int32(u)) })
}

// relabel turns arbitrary per-node keys into dense labels, numbered in
// order of each key's first (smallest) node ID.
func relabel(n int, key func(u int) int32) *Components {
	c := &Components{label: make([]int32, n+1)}
	byKey := make(map[int32]int32)
	for u := 1; u <= n; u++ {
		k := key(u)
		l, ok := byKey[k]
		if !ok {
			l = int32(len(c.sizes))
			byKey[k] = l
			c.sizes = append(c.sizes, 0)
		}
		c.label[u] = l
		c.sizes[l]++
	}

	return c
}

// Count returns the number of components.
func (c *Components) Count() int { return len(c.sizes) }

// Label returns id's component label, or -1 for an invalid ID.
func (c *Components) Label(id roadgraph.NodeID) int {
	if id < 1 || int(id) >= len(c.label) {
		return -1
	}
	return int(c.label[id])
}

// Size returns the number of nodes carrying label l.
func (c *Components) Size(l int) int {
	if l < 0 || l >= len(c.sizes) {
		return 0
	}
	return c.sizes[l]
}

// Connected reports whether a and b share a component.
func (c *Components) Connected(a, b roadgraph.NodeID) bool {
	la := c.Label(a)
	return la >= 0 && la == c.Label(b)
}

// Largest returns the label and size of the biggest component, or (-1, 0)
// for an empty graph.
func (c *Components) Largest() (label, size int) {
	label = -1
	for l, s := range c.sizes {
		if s > size {
			label, size = l, s
		}
	}
	return label, size
}
