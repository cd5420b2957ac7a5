package reach

import "github.com/katalvlaran/roadpath/roadgraph"

// Node states during the strong-component walk.
const (
	white = iota // not discovered
	gray         // on the component stack
	black        // assigned to a component
)

// frame is one level of the explicit DFS call stack: the node and the index
// of its next arc to try.
type frame struct {
	u    int32
	next int
}

// Strong computes the strongly connected components of g (Tarjan). Two nodes
// share a label exactly when each can reach the other along directed arcs.
// Labels are dense, 0-based and ordered by each component's smallest node ID.
//
// The walk is iterative, so continent-sized graphs do not grow the goroutine
// stack. Arcs leaving [1, NodeCount()] are ignored.
//
// Complexity: O(V + E) time, O(V) memory.
func Strong(g Graph) *Components {
	if g == nil {
		return &Components{}
	}
	n := g.NodeCount()

	var (
		state   = make([]uint8, n+1)
		index   = make([]int32, n+1) // discovery order, 1-based
		low     = make([]int32, n+1)
		comp    = make([]int32, n+1)
		stack   []int32 // nodes whose component is still open
		call    []frame
		counter int32
		found   int32
	)
	discover := func(v int32) {
		counter++
		index[v], low[v] = counter, counter
		state[v] = gray
		stack = append(stack, v)
		call = append(call, frame{u: v})
	}

	for root := 1; root <= n; root++ {
		if state[root] != white {
			continue
		}
		discover(int32(root))

		for len(call) > 0 {
			top := &call[len(call)-1]
			u := top.u
			arcs := g.Neighbors(roadgraph.NodeID(u))

			// 1. Try the next arc of u.
			if top.next < len(arcs) {
				v := int32(arcs[top.next].To)
				top.next++
				if v < 1 || int(v) > n {
					continue
				}
				switch state[v] {
				case white:
					discover(v)
				case gray:
					low[u] = min(low[u], index[v])
				}
				continue
			}

			// 2. u is finished: return to the caller.
			call = call[:len(call)-1]
			if len(call) > 0 {
				p := call[len(call)-1].u
				low[p] = min(low[p], low[u])
			}

			// 3. u roots a component: pop it off the stack.
			if low[u] == index[u] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					state[w] = black
					comp[w] = found
					if w == u {
						break
					}
				}
				found++
			}
		}
	}

	return relabel(n, func(u int) int32 { return comp[u] })
}
