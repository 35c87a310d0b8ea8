package pbqp

import "slices"

// workGraph is the solver's destructive copy of a Graph. Edge handles created
// by R2 reductions are appended past the original edges.
type workGraph struct {
	nodes    []workNode
	edges    []workEdge
	pairs    map[[2]NodeID]EdgeID
	alive    int
	original int // number of edges copied from the input graph
}

type workNode struct {
	costs Vector
	adj   []EdgeID
	alive bool
}

type workEdge struct {
	a, b  NodeID
	costs Matrix
	alive bool
}

func newWorkGraph(g *Graph) *workGraph {
	w := &workGraph{
		nodes:    make([]workNode, len(g.nodes)),
		edges:    make([]workEdge, len(g.edges)),
		pairs:    make(map[[2]NodeID]EdgeID, len(g.pairs)),
		alive:    len(g.nodes),
		original: len(g.edges),
	}
	for i, n := range g.nodes {
		adj := make([]EdgeID, len(n.edges))
		copy(adj, n.edges)
		w.nodes[i] = workNode{costs: n.costs.Clone(), adj: adj, alive: true}
	}
	for i, e := range g.edges {
		w.edges[i] = workEdge{a: e.a, b: e.b, costs: e.costs.Clone(), alive: true}
	}
	for k, v := range g.pairs {
		w.pairs[k] = v
	}
	return w
}

func (w *workGraph) clone() *workGraph {
	c := &workGraph{
		nodes:    make([]workNode, len(w.nodes)),
		edges:    make([]workEdge, len(w.edges)),
		pairs:    make(map[[2]NodeID]EdgeID, len(w.pairs)),
		alive:    w.alive,
		original: w.original,
	}
	for i, n := range w.nodes {
		adj := make([]EdgeID, len(n.adj))
		copy(adj, n.adj)
		c.nodes[i] = workNode{costs: n.costs.Clone(), adj: adj, alive: n.alive}
	}
	for i, e := range w.edges {
		c.edges[i] = workEdge{a: e.a, b: e.b, costs: e.costs.Clone(), alive: e.alive}
	}
	for k, v := range w.pairs {
		c.pairs[k] = v
	}
	return c
}

func (w *workGraph) degree(n NodeID) int {
	return len(w.nodes[n].adj)
}

func (w *workGraph) other(e EdgeID, n NodeID) NodeID {
	if w.edges[e].a == n {
		return w.edges[e].b
	}
	return w.edges[e].a
}

// oriented returns edge e's matrix with rows indexing n's options.
func (w *workGraph) oriented(e EdgeID, n NodeID) Matrix {
	if w.edges[e].a == n {
		return w.edges[e].costs
	}
	return w.edges[e].costs.Transpose()
}

func (w *workGraph) removeEdge(e EdgeID) {
	ed := &w.edges[e]
	ed.alive = false
	w.nodes[ed.a].adj = dropEdge(w.nodes[ed.a].adj, e)
	w.nodes[ed.b].adj = dropEdge(w.nodes[ed.b].adj, e)
	delete(w.pairs, pairKey(ed.a, ed.b))
}

func dropEdge(adj []EdgeID, e EdgeID) []EdgeID {
	for i, x := range adj {
		if x == e {
			return append(adj[:i], adj[i+1:]...)
		}
	}
	return adj
}

func (w *workGraph) removeNode(n NodeID) {
	for len(w.nodes[n].adj) > 0 {
		w.removeEdge(w.nodes[n].adj[0])
	}
	w.nodes[n].alive = false
	w.alive--
}

// addEdge merges m into the existing a-b edge, or creates one.
func (w *workGraph) addEdge(a, b NodeID, m Matrix) EdgeID {
	if id, ok := w.pairs[pairKey(a, b)]; ok {
		if w.edges[id].a != a {
			m = m.Transpose()
		}
		// shapes are guaranteed by construction
		_ = w.edges[id].costs.Add(m)
		return id
	}
	id := EdgeID(len(w.edges))
	w.edges = append(w.edges, workEdge{a: a, b: b, costs: m, alive: true})
	w.nodes[a].adj = append(w.nodes[a].adj, id)
	w.nodes[b].adj = append(w.nodes[b].adj, id)
	w.pairs[pairKey(a, b)] = id
	return id
}

// originalEdges filters out edges that only exist in the working copy.
func (w *workGraph) originalEdges(ids ...EdgeID) []EdgeID {
	out := make([]EdgeID, 0, len(ids))
	for _, id := range ids {
		if int(id) < w.original {
			out = append(out, id)
		}
	}
	return out
}

// components groups the alive nodes into connected components, each sorted
// by ID, ordered by their smallest member.
func (w *workGraph) components() [][]NodeID {
	seen := make([]bool, len(w.nodes))
	var comps [][]NodeID
	for start := range w.nodes {
		if !w.nodes[start].alive || seen[start] {
			continue
		}
		comp := []NodeID{}
		stack := []NodeID{NodeID(start)}
		seen[start] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, e := range w.nodes[n].adj {
				m := w.other(e, n)
				if !seen[m] {
					seen[m] = true
					stack = append(stack, m)
				}
			}
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	return comps
}

// searchSpace is the product of option counts, saturating at limit+1.
func (w *workGraph) searchSpace(comp []NodeID, limit int) int {
	size := 1
	for _, n := range comp {
		size *= len(w.nodes[n].costs)
		if size > limit {
			return limit + 1
		}
	}
	return size
}
